// Package algo holds the pure leaderboard algorithms: aggregation, ranking,
// sorting, filtering and row formatting.
package algo

import "github.com/huangsam/benchboard/schema"

// ComputeAggregate derives the composite score of a record using the variant formula.
// The result keeps full floating-point precision; rounding is a display concern.
func ComputeAggregate(v schema.Variant, r schema.BenchmarkRecord) float64 {
	switch v.Formula {
	case schema.FlatMean:
		return FlatMean(scoreValues(v, r))
	case schema.DomainSum:
		return DomainSum(scoreValues(v, r))
	case schema.TwoLevelMean:
		return TwoLevelMean(pairValues(v, r))
	default:
		return 0
	}
}

// FlatMean is the arithmetic mean of the scores. Empty input yields 0.
func FlatMean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	return DomainSum(scores) / float64(len(scores))
}

// DomainSum is the plain sum of the scores.
func DomainSum(scores []float64) float64 {
	var total float64
	for _, s := range scores {
		total += s
	}
	return total
}

// TwoLevelMean averages the per-category means, where each category mean is
// (singleton + multiturn) / 2. Empty input yields 0.
func TwoLevelMean(pairs []schema.Pair) float64 {
	if len(pairs) == 0 {
		return 0
	}
	means := make([]float64, len(pairs))
	for i, p := range pairs {
		means[i] = p.Mean()
	}
	return FlatMean(means)
}

// scoreValues collects the score fields of a record in variant order.
func scoreValues(v schema.Variant, r schema.BenchmarkRecord) []float64 {
	fields := v.FieldsOf(schema.ScoreKind)
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		values = append(values, r.Scores[f.Key])
	}
	return values
}

// pairValues collects the pair fields of a record in variant order.
func pairValues(v schema.Variant, r schema.BenchmarkRecord) []schema.Pair {
	fields := v.FieldsOf(schema.PairKind)
	values := make([]schema.Pair, 0, len(fields))
	for _, f := range fields {
		values = append(values, r.Pairs[f.Key])
	}
	return values
}
