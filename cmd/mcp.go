package cmd

import (
	"github.com/huangsam/benchboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Benchboard MCP server",
	Long:  `Launch an MCP server that allows AI agents to read leaderboards and submit scores via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr so stdio stays clean for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newServerLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, logger)
	},
}
