package algo

import (
	"testing"

	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestFlatMean(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{42}, 42},
		{"six metrics", []float64{80.63, 62.61, 39.95, 20.36, 38.53, 70.03}, 52.0183333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FlatMean(tt.scores), 1e-6)
		})
	}
}

func TestDomainSum(t *testing.T) {
	assert.Equal(t, 150.0, DomainSum([]float64{50, 40, 30, 20, 10}))
	assert.Equal(t, 0.0, DomainSum(nil))
}

func TestTwoLevelMean(t *testing.T) {
	pairs := []schema.Pair{
		{Singleton: 8, Multiturn: 6},
		{Singleton: 6, Multiturn: 8},
	}
	assert.Equal(t, 7.0, pairs[0].Mean())
	assert.Equal(t, 7.0, pairs[1].Mean())
	assert.Equal(t, 7.0, TwoLevelMean(pairs))
	assert.Equal(t, 0.0, TwoLevelMean(nil))
}

func TestTwoLevelMeanMatchesHalfMeans(t *testing.T) {
	pairs := []schema.Pair{
		{Singleton: 7.0, Multiturn: 6.57},
		{Singleton: 8.57, Multiturn: 7.43},
		{Singleton: 9.86, Multiturn: 10.0},
		{Singleton: 9.71, Multiturn: 9.71},
		{Singleton: 9.14, Multiturn: 7.14},
		{Singleton: 9.29, Multiturn: 9.14},
	}
	var singles, multis []float64
	for _, p := range pairs {
		singles = append(singles, p.Singleton)
		multis = append(multis, p.Multiturn)
	}
	halves := (FlatMean(singles) + FlatMean(multis)) / 2
	assert.InDelta(t, halves, TwoLevelMean(pairs), 1e-9)
}

func TestComputeAggregate(t *testing.T) {
	t.Run("models flat mean", func(t *testing.T) {
		rec := schema.BenchmarkRecord{
			Name: "MazyarPanahi/calme-3.2-instruct-7bb",
			Scores: map[string]float64{
				"ifeval": 80.63, "bbh": 62.61, "math": 39.95,
				"gpqa": 20.36, "musr": 38.53, "mmlu": 70.03,
			},
			Metrics: map[string]float64{"co2": 12.5},
		}
		got := ComputeAggregate(schema.Models, rec)
		assert.InDelta(t, 52.0183, got, 1e-4)
		assert.Equal(t, "52.02", FormatNumber(got, 2, ""))
	})

	t.Run("rag domain sum", func(t *testing.T) {
		rec := schema.BenchmarkRecord{
			Name: "svc",
			Scores: map[string]float64{
				"finance": 50, "public": 40, "medical": 30, "law": 20, "commerce": 10,
			},
		}
		assert.Equal(t, 150.0, ComputeAggregate(schema.RAG, rec))
	})

	t.Run("logickor two level mean", func(t *testing.T) {
		rec := schema.BenchmarkRecord{
			Name: "EXAONE",
			Pairs: map[string]schema.Pair{
				"math":          {Singleton: 8, Multiturn: 6},
				"grammar":       {Singleton: 6, Multiturn: 8},
				"comprehension": {Singleton: 7, Multiturn: 7},
				"writing":       {Singleton: 7, Multiturn: 7},
				"reasoning":     {Singleton: 7, Multiturn: 7},
				"coding":        {Singleton: 7, Multiturn: 7},
			},
		}
		assert.Equal(t, 7.0, ComputeAggregate(schema.LogicKor, rec))
	})

	t.Run("metrics do not contribute", func(t *testing.T) {
		rec := schema.BenchmarkRecord{
			Scores:  map[string]float64{"ifeval": 60, "bbh": 60, "math": 60, "gpqa": 60, "musr": 60, "mmlu": 60},
			Metrics: map[string]float64{"co2": 1000},
		}
		assert.Equal(t, 60.0, ComputeAggregate(schema.Models, rec))
	})
}
