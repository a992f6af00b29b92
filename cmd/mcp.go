package cmd

import (
	"github.com/bikecast/bikecast/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the bikecast MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents request rental predictions via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Operator logs must never reach stdout, which carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newService("mcp"), historyManager)
	},
}
