package main

import (
	"context"

	"github.com/spf13/cobra"

	"refinery/internal/logging"
	mcpserver "refinery/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the prepare_dataset and
inspect_dataset tools, so agent hosts can drive the pipeline directly.

The server monitors for parent process death and self-terminates when the
host disconnects, to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting refinery MCP server over stdio (parent watchdog active)")
	return mcpserver.NewServer(version).Serve(ctx)
}
