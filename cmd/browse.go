package cmd

import (
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/tui"
	"github.com/spf13/cobra"
)

// browseCmd opens the interactive leaderboard browser.
var browseCmd = &cobra.Command{
	Use:   "browse <variant>",
	Short: "Browse a leaderboard interactively.",
	Long: `Open a terminal table of one leaderboard.

Keys:
  ←/→ or h/l  move between columns
  s or enter  sort by the selected column (again to flip the direction)
  /           search the name fields
  f           cycle the filter: all, top10, then each category
  r           reload, or retry after a failed load
  q           quit

Examples:
  benchboard browse models
  benchboard browse rag --sort total --remote-order`,
	Args:    cobra.ExactArgs(1),
	PreRunE: viewSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := tui.RunBrowser(rootCtx, cfg, storeManager.GetRecordStore()); err != nil {
			contract.LogFatal("Browser failed", err)
		}
	},
}
