package cmd

import (
	"github.com/spf13/cobra"
	"github.com/willshacklett/godscore/internal/ledger"
	"github.com/willshacklett/godscore/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GodScore MCP server",
	Long:  `Launch an MCP server that allows AI agents to score changes and read ledger history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdio carries the protocol, so setup must not print to stdout.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, ledger.GetLedger())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
