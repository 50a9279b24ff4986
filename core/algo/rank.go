package algo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/huangsam/benchboard/schema"
)

// AssignRanks returns a copy of the records ordered by aggregate score descending
// with rank = index + 1. Equal aggregates are ordered by name, then ID, and finally
// keep their fetch order, so ranks do not depend on how the store ordered the rows.
// The input slice is not modified.
func AssignRanks(records []schema.BenchmarkRecord) []schema.BenchmarkRecord {
	ranked := make([]schema.BenchmarkRecord, len(records))
	for i, r := range records {
		ranked[i] = r.Clone()
	}
	slices.SortStableFunc(ranked, func(a, b schema.BenchmarkRecord) int {
		if c := cmp.Compare(b.Aggregate, a.Aggregate); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// RankAggregates recomputes every aggregate with the variant formula and ranks the result.
// Variants whose store holds the aggregate keep the stored value.
func RankAggregates(v schema.Variant, records []schema.BenchmarkRecord) []schema.BenchmarkRecord {
	if v.StoredAggregate {
		return AssignRanks(records)
	}
	computed := make([]schema.BenchmarkRecord, len(records))
	for i, r := range records {
		computed[i] = r
		computed[i].Aggregate = ComputeAggregate(v, r)
	}
	return AssignRanks(computed)
}
