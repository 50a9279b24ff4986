package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/parquet"
	"github.com/huangsam/benchboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSummaries outputs the metric cards, dispatching based on the output format configured.
func PrintSummaries(summaries []schema.BoardSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summaries, cfg.Precision)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSummaryParquet(parquet.SummaryRows(summaries), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		reportWrite("Wrote Parquet", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summaries, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// summaryPrecision returns the configured precision or the leaderboard default.
func summaryPrecision(s schema.BoardSummary, precision int) int {
	if precision > 0 {
		return precision
	}
	return s.Precision
}

// formatMetricTotals renders metric totals as "label: value" pairs in key order.
func formatMetricTotals(s schema.BoardSummary, precision int) string {
	if len(s.MetricTotals) == 0 {
		return "-"
	}
	v, _ := schema.LookupVariant(string(s.Variant))
	parts := make([]string, 0, len(s.MetricTotals))
	for _, key := range slices.Sorted(maps.Keys(s.MetricTotals)) {
		label, unit := key, ""
		if f, ok := v.Field(key); ok {
			label, unit = f.Label, f.Unit
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, algo.FormatNumber(s.MetricTotals[key], precision, unit)))
	}
	return strings.Join(parts, ", ")
}

// writeSummaryTable generates and writes the human-readable metric cards.
func writeSummaryTable(w io.Writer, summaries []schema.BoardSummary, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Leaderboard", "Records", "Average", "Top Entry", "Top Score", "Totals"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := GetMaxTableTextWidth(cfg, 3, 3)
	data := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		precision := summaryPrecision(s, cfg.Precision)
		top, topScore, average := "-", "-", "-"
		if s.Records > 0 {
			top = contract.TruncateText(s.TopName, maxText)
			topScore = algo.FormatNumber(s.TopAggregate, precision, s.Unit)
			average = algo.FormatNumber(s.Average, precision, s.Unit)
		}
		data = append(data, []string{
			s.Title,
			strconv.Itoa(s.Records),
			average,
			top,
			topScore,
			formatMetricTotals(s, precision),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Loaded %d leaderboards in %v. Store backend: %s\n", len(summaries), duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSV writes one row per metric card.
func writeSummaryCSV(w io.Writer, summaries []schema.BoardSummary, precision int) error {
	header := []string{"variant", "title", "records", "average", "top_name", "top_aggregate", "metric_totals"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range summaries {
			fmtFloat, _ := createFormatters(summaryPrecision(s, precision))
			totals := make([]string, 0, len(s.MetricTotals))
			for _, key := range slices.Sorted(maps.Keys(s.MetricTotals)) {
				totals = append(totals, key+"="+fmtFloat(s.MetricTotals[key]))
			}
			rec := []string{
				string(s.Variant),
				s.Title,
				strconv.Itoa(s.Records),
				fmtFloat(s.Average),
				s.TopName,
				fmtFloat(s.TopAggregate),
				strings.Join(totals, "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
