package cmd

import (
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// viewSetup binds the view flags of the running command before the shared setup.
func viewSetup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return sharedSetup(rootCtx, cmd, args)
}

// boardCmd prints one ranked leaderboard.
var boardCmd = &cobra.Command{
	Use:     "board <variant>",
	Aliases: []string{"show"},
	Short:   "Show a leaderboard ranked by its aggregate score.",
	Long: `Load one leaderboard, rank it by its aggregate score and print it.

Leaderboards:
- models:   general LLM benchmarks, average of six scores
- logickor: Korean reasoning, mean of singleton and multiturn category scores
- rag:      RAG configurations, sum of five domain scores

Ranks always follow the aggregate. Sorting, searching and filtering only
change which rows are shown and in what order.

Examples:
  # Show the model leaderboard
  benchboard board models

  # Sort LogicKor by the coding category, best first
  benchboard board logickor --sort coding

  # Find RAG services using a given parser
  benchboard board rag --search upstage

  # Only the chat models of the top ten
  benchboard board models --filter chat

  # Export the full board to Parquet
  benchboard board models --output parquet --output-file models.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: viewSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBoard(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot load leaderboard", err)
		}
	},
}

// summaryCmd prints the metric cards of every leaderboard.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show record counts, averages and leaders of every leaderboard.",
	Long: `Load every leaderboard concurrently and print one summary row per board:
the number of records, the average aggregate, the leading entry and
metric totals such as CO2.

Examples:
  # Summary of all boards
  benchboard summary

  # As JSON
  benchboard summary --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot load summaries", err)
		}
	},
}

// variantsCmd prints the schema of every leaderboard.
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the leaderboards with their fields and formulas.",
	Long: `Print each leaderboard with its aggregate formula, sortable fields and
the inputs of its submission form.

Examples:
  benchboard variants
  benchboard variants --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVariants(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list leaderboards", err)
		}
	},
}
