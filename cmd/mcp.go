package cmd

import (
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the activation tools",
	Long: `Start a Model Context Protocol (MCP) server with the same operations as
the D-Bus service. The server owns its own settings.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport

Examples:
  activate-window mcp
  activate-window mcp --transport streamable-http --port 8080`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	engine, provider, err := newEngine(log)
	if err != nil {
		return err
	}
	defer provider.Close()

	log.Info("Starting MCP server", "transport", transport, "backend", engine.Backend())
	return newMCPServer(engine).serve(MCPConfig{Transport: transport, Port: port})
}
