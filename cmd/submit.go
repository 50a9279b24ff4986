package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/tui"
	"github.com/huangsam/benchboard/schema"
	"github.com/spf13/cobra"
)

// submitCmd validates and stores one score submission.
var submitCmd = &cobra.Command{
	Use:   "submit <variant>",
	Short: "Submit a new score to a leaderboard.",
	Long: `Validate a score submission and append it to the leaderboard.

Every field of the submission form is checked at once; all malformed
fields are reported together and nothing is stored. The aggregate is
computed from the submitted scores (RAG stores its total).

Pair fields of LogicKor take two inputs, e.g. math_singleton and
math_multiturn. Run 'benchboard variants' to list every form field.

Examples:
  # Submit a model score
  benchboard submit models --field model=gpt-4o --field type=chat \
    --field ifeval=80.6 --field bbh=62.6 --field math=39.9 \
    --field gpqa=20.4 --field musr=38.5 --field mmlu=70.0

  # Fill in the form interactively
  benchboard submit logickor --interactive`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		fields, err := submissionFields(cmd)
		if errors.Is(err, tui.ErrFormAborted) {
			contract.LogWarn("Submission not stored", err)
			return
		}
		if err != nil {
			contract.LogFatal("Invalid submission", err)
		}
		if err := core.ExecuteSubmit(rootCtx, cfg, storeManager, fields); err != nil {
			var ve *schema.ValidationError
			if errors.As(err, &ve) {
				for _, p := range ve.Problems {
					fmt.Fprintf(os.Stderr, "  - %s: %s\n", p.Field, p.Reason)
				}
			}
			contract.LogFatal("Cannot submit score", err)
		}
	},
}

// submissionFields collects the form values from --field flags and, when asked, the form.
func submissionFields(cmd *cobra.Command) (map[string]string, error) {
	pairs, err := cmd.Flags().GetStringArray("field")
	if err != nil {
		return nil, err
	}
	fields, err := contract.ParseFieldAssignments(pairs)
	if err != nil {
		return nil, err
	}

	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return nil, err
	}
	if interactive {
		return tui.RunSubmissionForm(cfg.Variant, os.Stdin, os.Stderr, fields)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields given. use --field key=value or --interactive")
	}
	return fields, nil
}
