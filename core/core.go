// Package core has core logic for loading, ranking and presenting leaderboards.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/outwriter"
	"github.com/huangsam/benchboard/schema"
)

// ExecutorFunc defines the function signature for executing the leaderboard commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// errNoStore is returned when a command runs before the store layer is initialized.
var errNoStore = errors.New("no record store configured")

// FetchRecords reads every record of the variant from the store.
// Any failure is wrapped as a FetchError. There is no retry; callers re-invoke.
func FetchRecords(ctx context.Context, store contract.RecordStore, v schema.Variant, order *schema.SortSpec) ([]schema.BenchmarkRecord, error) {
	if store == nil {
		return nil, &schema.FetchError{Variant: v, Err: errNoStore}
	}
	records, err := store.FetchRecords(ctx, v, order)
	if err != nil {
		return nil, &schema.FetchError{Variant: v, Err: err}
	}
	return records, nil
}

// GetLeaderboard fetches the configured variant, ranks it once, then filters,
// sorts and formats the visible rows.
func GetLeaderboard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.Board, error) {
	v := cfg.Variant
	var order *schema.SortSpec
	if cfg.RemoteOrder {
		order = &cfg.Sort
	}

	fetched, err := FetchRecords(ctx, mgr.GetRecordStore(), v, order)
	if err != nil {
		return schema.Board{}, err
	}
	ranked := algo.RankAggregates(v, fetched)
	visible := algo.NewPipeline(v, cfg.Locale).Apply(ranked, cfg.Query, cfg.Sort)

	return schema.Board{
		Variant: v.Name,
		Title:   v.Title,
		Sort:    cfg.Sort,
		Query:   cfg.Query,
		Total:   len(ranked),
		Records: ranked,
		Visible: visible,
		Rows:    algo.ToDisplayRows(v, visible, cfg.Precision),
	}, nil
}

// ExecuteBoard loads one leaderboard and prints it in the configured output format.
func ExecuteBoard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	board, err := GetLeaderboard(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBoard(board, cfg, time.Since(start))
}

// ExecuteSummary loads every leaderboard concurrently and prints their metric cards.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	summaries, err := GetSummaries(ctx, mgr, schema.AllVariants)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummaries(summaries, cfg, time.Since(start))
}

// ExecuteVariants prints the schema of every leaderboard.
func ExecuteVariants(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteVariants(schema.AllVariants, cfg)
}

// ExecuteSubmit validates and stores one submission, then reports the stored record.
func ExecuteSubmit(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, fields map[string]string) error {
	record, err := SubmitRecord(ctx, mgr.GetRecordStore(), cfg.Variant, fields)
	if err != nil {
		return err
	}
	precision := cfg.Precision
	if precision <= 0 {
		precision = cfg.Variant.Precision
	}
	agg := cfg.Variant.AggregateField()
	_, err = fmt.Fprintf(os.Stdout, "✅ Submitted %s to %s (%s %s, id %s)\n",
		record.Name, cfg.Variant.Title, agg.Label, algo.FormatNumber(record.Aggregate, precision, agg.Unit), record.ID)
	return err
}
