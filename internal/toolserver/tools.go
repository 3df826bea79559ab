package toolserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/smat-dev/jinni/internal/jinni"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// readContextTool adapts jinni.ReadContext to an MCP tool call.
type readContextTool struct {
	logger *zap.Logger
}

func newReadContextTool(logger *zap.Logger) *readContextTool {
	return &readContextTool{logger: logger}
}

// Definition describes the tool's JSON schema for MCP clients.
func (t *readContextTool) Definition() mcp.Tool {
	return mcp.NewTool("read_context",
		mcp.WithDescription("Build a consolidated text dump of a project directory, filtered through .gitignore/.contextfiles rules, for ingestion in a single call."),
		mcp.WithString("project_root",
			mcp.Required(),
			mcp.Description("Absolute path to the project root; all output paths are relative to this directory."),
		),
		mcp.WithArray("targets",
			mcp.Description("Specific files or directories within project_root to include. Empty means the whole project root."),
		),
		mcp.WithArray("override_rules",
			mcp.Description("Gitignore-style patterns that, when non-empty, entirely replace defaults/.gitignore/.contextfiles."),
		),
		mcp.WithBoolean("list_only",
			mcp.Description("Return only the list of included relative paths instead of their content."),
		),
		mcp.WithBoolean("include_size_in_list",
			mcp.Description("In list-only mode, prefix each path with its byte size."),
		),
		mcp.WithNumber("size_limit_mb",
			mcp.Description("Aggregate content size budget in MiB. 0 uses JINNI_MAX_SIZE_MB or the built-in default."),
		),
	)
}

// Handle executes read_context and renders the result or a structured
// error as the tool's text content.
func (t *readContextTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	projectRoot, _ := args["project_root"].(string)
	if projectRoot == "" {
		return mcp.NewToolResultError("project_root is required"), nil
	}

	req := jinni.Request{
		ProjectRoot:       projectRoot,
		Targets:           stringSlice(args["targets"]),
		OverrideRules:     stringSlice(args["override_rules"]),
		ListOnly:          boolArg(args["list_only"]),
		IncludeSizeInList: boolArg(args["include_size_in_list"]),
		SizeLimitBytes:    int64(numberArg(args["size_limit_mb"])) * 1024 * 1024,
		Ctx:               ctx,
	}

	t.logger.Debug("read_context tool invoked",
		zap.String("projectRoot", projectRoot),
		zap.Strings("targets", req.Targets),
	)

	result, err := jinni.ReadContext(req)
	if err != nil {
		return renderToolError(err), nil
	}

	return mcp.NewToolResultText(result.Output), nil
}

func renderToolError(err error) *mcp.CallToolResult {
	var sizeErr *jinni.DetailedContextSizeError
	if errors.As(err, &sizeErr) {
		msg := fmt.Sprintf("context size limit exceeded: %d bytes observed, limit is %d bytes\nlargest files:\n", sizeErr.ObservedBytes, sizeErr.LimitBytes)
		for _, f := range sizeErr.LargestFiles {
			msg += fmt.Sprintf("  %10d  %s\n", f.Bytes, f.RelPath)
		}
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(err.Error())
}

func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func boolArg(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func numberArg(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
