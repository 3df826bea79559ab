// Package toolserver wires the jinni context engine into a Model
// Context Protocol server: a single tool, read_context, that an
// MCP-speaking agent can call directly instead of shelling out to the
// CLI. No business logic lives here, only wiring and request/response
// translation.
package toolserver

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags, mirroring pkg/version.
var Version = "dev"

// New builds an MCP server exposing the read_context tool.
func New(logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"jinni",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	rc := newReadContextTool(logger)
	s.AddTool(rc.Definition(), rc.Handle)

	return s
}

// ServeStdio runs the server over stdio, the transport MCP clients
// (editors, agent runtimes) launch a subprocess with.
func ServeStdio(logger *zap.Logger) error {
	return server.ServeStdio(New(logger))
}

func serverInstructions() string {
	return `jinni exposes one tool, read_context, that builds a consolidated text dump of a project directory for you to read in one call instead of opening files one at a time.

Call read_context with a project_root and, optionally, specific target paths within it. Leave targets empty to dump the whole project root. Use list_only=true first on large projects to see what would be included before paying for the full content.`
}
