package algo

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []schema.BenchmarkRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestAssignRanks_Scenario(t *testing.T) {
	fetched := []schema.BenchmarkRecord{
		{ID: "a", Name: "Model-A", Aggregate: 90},
		{ID: "b", Name: "Model-B", Aggregate: 95},
	}
	ranked := AssignRanks(fetched)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Model-B", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Model-A", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Rank)

	// The fetched slice keeps its order and its zero ranks.
	assert.Equal(t, []string{"Model-A", "Model-B"}, names(fetched))
	assert.Zero(t, fetched[0].Rank)
}

func TestAssignRanks_DenseAndMaximal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	records := make([]schema.BenchmarkRecord, 50)
	for i := range records {
		records[i] = schema.BenchmarkRecord{
			ID:        fmt.Sprintf("id-%02d", i),
			Name:      fmt.Sprintf("model-%02d", i),
			Aggregate: float64(rng.Intn(20)), // plenty of ties
		}
	}
	ranked := AssignRanks(records)

	maxAggregate := 0.0
	for _, r := range records {
		maxAggregate = max(maxAggregate, r.Aggregate)
	}
	assert.Equal(t, maxAggregate, ranked[0].Aggregate)

	seen := make(map[int]bool)
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
		assert.False(t, seen[r.Rank], "duplicate rank %d", r.Rank)
		seen[r.Rank] = true
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].Aggregate, r.Aggregate)
		}
	}
	assert.Len(t, seen, len(records))
}

func TestAssignRanks_TieBreakIgnoresFetchOrder(t *testing.T) {
	forward := []schema.BenchmarkRecord{
		{ID: "1", Name: "zeta", Aggregate: 80},
		{ID: "2", Name: "alpha", Aggregate: 80},
		{ID: "3", Name: "mid", Aggregate: 90},
	}
	backward := []schema.BenchmarkRecord{forward[2], forward[1], forward[0]}

	want := []string{"mid", "alpha", "zeta"}
	if diff := cmp.Diff(want, names(AssignRanks(forward))); diff != "" {
		t.Errorf("forward ranking mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, names(AssignRanks(backward))); diff != "" {
		t.Errorf("backward ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignRanks_Empty(t *testing.T) {
	assert.Empty(t, AssignRanks(nil))
}

func TestRankAggregates(t *testing.T) {
	t.Run("computed variants recompute the aggregate", func(t *testing.T) {
		records := []schema.BenchmarkRecord{
			{ID: "1", Name: "low", Aggregate: 99, Scores: map[string]float64{"ifeval": 10, "bbh": 10, "math": 10, "gpqa": 10, "musr": 10, "mmlu": 10}},
			{ID: "2", Name: "high", Aggregate: 1, Scores: map[string]float64{"ifeval": 90, "bbh": 90, "math": 90, "gpqa": 90, "musr": 90, "mmlu": 90}},
		}
		ranked := RankAggregates(schema.Models, records)
		assert.Equal(t, []string{"high", "low"}, names(ranked))
		assert.InDelta(t, 90, ranked[0].Aggregate, 1e-9)
	})

	t.Run("stored aggregate is kept", func(t *testing.T) {
		records := []schema.BenchmarkRecord{
			{ID: "1", Name: "a", Aggregate: 120, Scores: map[string]float64{"finance": 1}},
			{ID: "2", Name: "b", Aggregate: 200, Scores: map[string]float64{"finance": 60}},
		}
		ranked := RankAggregates(schema.RAG, records)
		assert.Equal(t, []string{"b", "a"}, names(ranked))
		assert.Equal(t, 200.0, ranked[0].Aggregate)
	})
}
