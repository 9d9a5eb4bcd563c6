package cmd

import (
	"github.com/cfudash/fundboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the fundboard MCP server",
	Long:  `Launch an MCP server that allows AI agents to query dashboard datasets and views via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tools suppress the load header themselves since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, fetcher, oilSource)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
