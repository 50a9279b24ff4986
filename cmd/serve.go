package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/benchboard/internal/webapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newServerLogger builds the production logger of the long-running commands.
// It writes JSON lines to stderr.
func newServerLogger(cmd *cobra.Command) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the leaderboards over HTTP.",
	Long: `Start a JSON API over the configured store.

Routes:
  GET  /health
  GET  /api/variants
  GET  /api/summary
  GET  /api/leaderboards/:variant?q=&sort=&dir=&filter=
  POST /api/leaderboards/:variant/scores

Submissions are rate limited per client (--submit-rate, --submit-burst).

Examples:
  # Listen on the default address
  benchboard serve

  # Allow a browser frontend on another origin
  benchboard serve --addr :9000 --cors-origins https://board.example.com`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newServerLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		gin.SetMode(gin.ReleaseMode)
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return webapi.Serve(ctx, cfg, storeManager, logger)
	},
}
