// Package schema holds the leaderboard models shared by every layer.
package schema

import (
	"maps"
	"slices"
)

// Pair is a sub-score measured once in a single turn and once across a multi-turn dialogue.
type Pair struct {
	Singleton float64 `json:"singleton" yaml:"singleton"`
	Multiturn float64 `json:"multiturn" yaml:"multiturn"`
}

// Mean returns the category mean of the two halves.
func (p Pair) Mean() float64 {
	return (p.Singleton + p.Multiturn) / 2
}

// Half returns the value of the named half.
func (p Pair) Half(half string) float64 {
	if half == MultiturnHalf {
		return p.Multiturn
	}
	return p.Singleton
}

// BenchmarkRecord is one evaluated subject on a leaderboard.
// Records are immutable once fetched; the rank is assigned once per fetch.
type BenchmarkRecord struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Text      map[string]string  `json:"text,omitempty"`
	Scores    map[string]float64 `json:"scores,omitempty"`
	Pairs     map[string]Pair    `json:"pairs,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Aggregate float64            `json:"aggregate"`
	Rank      int                `json:"rank"`
}

// TextValue returns the text value of a name or text field.
func (r BenchmarkRecord) TextValue(f FieldSpec) string {
	if f.Kind == NameKind {
		return r.Name
	}
	return r.Text[f.Key]
}

// NumberValue returns the numeric value used to sort the field.
// Pair fields resolve to their category mean, split fields to the mean of that half.
func (r BenchmarkRecord) NumberValue(f FieldSpec) float64 {
	switch f.Kind {
	case ScoreKind:
		return r.Scores[f.Key]
	case PairKind:
		return r.Pairs[f.Key].Mean()
	case SplitKind:
		return r.SplitMean(f.Key)
	case MetricKind:
		return r.Metrics[f.Key]
	case AggregateKind:
		return r.Aggregate
	case RankKind:
		return float64(r.Rank)
	default:
		return 0
	}
}

// SplitMean returns the mean of one half across all pairs of the record.
func (r BenchmarkRecord) SplitMean(half string) float64 {
	if len(r.Pairs) == 0 {
		return 0
	}
	var sum float64
	for _, key := range slices.Sorted(maps.Keys(r.Pairs)) {
		sum += r.Pairs[key].Half(half)
	}
	return sum / float64(len(r.Pairs))
}

// Clone returns a deep copy of the record.
func (r BenchmarkRecord) Clone() BenchmarkRecord {
	out := r
	out.Text = maps.Clone(r.Text)
	out.Scores = maps.Clone(r.Scores)
	out.Pairs = maps.Clone(r.Pairs)
	out.Metrics = maps.Clone(r.Metrics)
	return out
}

// SortSpec selects the column and direction of a leaderboard view.
type SortSpec struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Query holds the free-text search and the filter type of a leaderboard view.
type Query struct {
	Search     string `json:"search"`
	FilterType string `json:"filter_type"`
}

// Board is the full result of loading one leaderboard.
type Board struct {
	Variant VariantName       `json:"variant"`
	Title   string            `json:"title"`
	Sort    SortSpec          `json:"sort"`
	Query   Query             `json:"query"`
	Total   int               `json:"total"`
	Records []BenchmarkRecord `json:"-"` // ranked, unfiltered
	Visible []BenchmarkRecord `json:"-"` // filtered and sorted
	Rows    []DisplayRow      `json:"rows"`
}
