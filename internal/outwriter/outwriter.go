// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteBoard prints one leaderboard using the configured output format.
func (ow *OutWriter) WriteBoard(board schema.Board, cfg *contract.Config, duration time.Duration) error {
	return PrintBoard(board, cfg, duration)
}

// WriteSummaries prints the metric cards of every leaderboard using the configured output format.
func (ow *OutWriter) WriteSummaries(summaries []schema.BoardSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaries(summaries, cfg, duration)
}

// WriteVariants prints the leaderboard definitions using the configured output format.
func (ow *OutWriter) WriteVariants(variants []schema.Variant, cfg *contract.Config) error {
	return PrintVariants(variants, cfg)
}
