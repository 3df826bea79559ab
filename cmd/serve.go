package cmd

import (
	"github.com/smat-dev/jinni/internal/toolserver"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run jinni as a Model Context Protocol tool-server over stdio",
	Long:  `Serve exposes read_context as an MCP tool over stdio, for agent runtimes that speak MCP instead of shelling out to the CLI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer syncLogger(logger)
		return toolserver.ServeStdio(logger)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
