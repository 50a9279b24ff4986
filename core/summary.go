package core

import (
	"context"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"golang.org/x/sync/errgroup"
)

// GetSummaries fetches the variants concurrently and computes their metric cards.
// The first failure cancels the remaining fetches.
func GetSummaries(ctx context.Context, mgr contract.StoreManager, variants []schema.Variant) ([]schema.BoardSummary, error) {
	store := mgr.GetRecordStore()
	summaries := make([]schema.BoardSummary, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			fetched, err := FetchRecords(gctx, store, v, nil)
			if err != nil {
				return err
			}
			summaries[i] = Summarize(v, algo.RankAggregates(v, fetched))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Summarize computes the metric cards of a ranked leaderboard.
func Summarize(v schema.Variant, ranked []schema.BenchmarkRecord) schema.BoardSummary {
	summary := schema.BoardSummary{
		Variant:   v.Name,
		Title:     v.Title,
		Records:   len(ranked),
		Unit:      v.AggregateField().Unit,
		Precision: v.Precision,
	}
	if len(ranked) == 0 {
		return summary
	}

	aggregates := make([]float64, len(ranked))
	totals := map[string]float64{}
	for i, r := range ranked {
		aggregates[i] = r.Aggregate
		for key, value := range r.Metrics {
			totals[key] += value
		}
	}
	summary.Average = algo.FlatMean(aggregates)
	summary.TopName = ranked[0].Name
	summary.TopAggregate = ranked[0].Aggregate
	if len(totals) > 0 {
		summary.MetricTotals = totals
	}
	return summary
}
