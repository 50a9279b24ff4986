// Package parquet provides data structures and functions for exporting leaderboards
// to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/benchboard/schema"
	"github.com/parquet-go/parquet-go"
)

// LeaderboardCell is one value of one ranked record in long format.
// Variants have different columns, so every field becomes its own row.
type LeaderboardCell struct {
	// Variant is the leaderboard the record belongs to
	Variant string `parquet:"variant,snappy,dict"`

	// Rank is the 1-based rank assigned at fetch time
	Rank int32 `parquet:"rank,snappy"`

	// RecordID is the UUID of the record
	RecordID string `parquet:"record_id,snappy"`

	// Name is the model or service name
	Name string `parquet:"name,snappy"`

	// Field is the field key; pair fields use one key per half
	Field string `parquet:"field,snappy,dict"`

	// NumberValue holds numeric fields (nullable)
	NumberValue *float64 `parquet:"number_value,optional,snappy"`

	// TextValue holds text fields (nullable)
	TextValue *string `parquet:"text_value,optional,snappy"`
}

// BoardSummaryRow is the metric card of one leaderboard.
type BoardSummaryRow struct {
	Variant      string  `parquet:"variant,snappy"`
	Title        string  `parquet:"title,snappy"`
	Records      int32   `parquet:"records,snappy"`
	Average      float64 `parquet:"average,snappy"`
	TopName      *string `parquet:"top_name,optional,snappy"`
	TopAggregate float64 `parquet:"top_aggregate,snappy"`
}

// CellsFromRecords flattens ranked records into long-format cells.
// Missing metrics and empty text produce no cell.
func CellsFromRecords(v schema.Variant, records []schema.BenchmarkRecord) []LeaderboardCell {
	var out []LeaderboardCell
	for _, r := range records {
		base := LeaderboardCell{Variant: string(v.Name), Rank: int32(r.Rank), RecordID: r.ID, Name: r.Name}
		number := func(field string, value float64) {
			c := base
			c.Field = field
			c.NumberValue = &value
			out = append(out, c)
		}
		for _, f := range v.Fields {
			switch f.Kind {
			case schema.TextKind:
				if text := r.Text[f.Key]; text != "" {
					c := base
					c.Field = f.Key
					c.TextValue = &text
					out = append(out, c)
				}
			case schema.PairKind:
				s, m := f.PairColumns()
				number(s, r.Pairs[f.Key].Singleton)
				number(m, r.Pairs[f.Key].Multiturn)
			case schema.MetricKind:
				if value, ok := r.Metrics[f.Key]; ok {
					number(f.Key, value)
				}
			case schema.ScoreKind, schema.SplitKind, schema.AggregateKind:
				number(f.Key, r.NumberValue(f))
			}
		}
	}
	return out
}

// SummaryRows converts metric cards into parquet rows.
func SummaryRows(summaries []schema.BoardSummary) []BoardSummaryRow {
	out := make([]BoardSummaryRow, len(summaries))
	for i, s := range summaries {
		out[i] = BoardSummaryRow{
			Variant:      string(s.Variant),
			Title:        s.Title,
			Records:      int32(s.Records),
			Average:      s.Average,
			TopAggregate: s.TopAggregate,
		}
		if s.TopName != "" {
			name := s.TopName
			out[i].TopName = &name
		}
	}
	return out
}

// WriteLeaderboardParquet writes leaderboard cells to a Parquet file.
func WriteLeaderboardParquet(data []LeaderboardCell, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSummaryParquet writes metric cards to a Parquet file.
func WriteSummaryParquet(data []BoardSummaryRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows of any tagged struct to a new file.
// The schema is derived from the struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
