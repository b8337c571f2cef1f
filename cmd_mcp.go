package main

import (
	"github.com/spf13/cobra"

	"investor_outreach/agent"
	"investor_outreach/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the outreach tools over MCP on stdio",
	Long: `Starts an MCP server over stdin/stdout exposing traction_bullets,
bridge_and_angle, compose_email, so_what_check and skim_check. Logs go to
stderr so they never mix with the protocol stream.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	tools, err := agent.NewToolbox(cfg.Product)
	if err != nil {
		return err
	}
	return mcptools.NewServer(tools, version, logger).Run(cmd.Context())
}
