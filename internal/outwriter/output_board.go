package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/internal/parquet"
	"github.com/huangsam/benchboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBoard outputs a leaderboard, dispatching based on the output format configured.
func PrintBoard(board schema.Board, cfg *contract.Config, duration time.Duration) error {
	v := cfg.Variant
	precision := cfg.Precision
	if precision <= 0 {
		precision = v.Precision
	}
	fmtFloat, fmtOptional := createFormatters(precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, board)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoardCSV(w, v, board, fmtFloat, fmtOptional)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteLeaderboardParquet(parquet.CellsFromRecords(v, board.Visible), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		reportWrite("Wrote Parquet", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBoardTable(w, v, board, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// boardCSVHeader returns the CSV columns of a variant. Pair fields get one column per half.
func boardCSVHeader(v schema.Variant) []string {
	header := []string{"rank", "id", v.NameField().Key}
	for _, f := range v.Fields {
		switch f.Kind {
		case schema.RankKind, schema.NameKind:
			continue
		case schema.PairKind:
			s, m := f.PairColumns()
			header = append(header, s, m)
		default:
			header = append(header, f.Key)
		}
	}
	return header
}

// writeBoardCSV writes the visible records with raw values, rounded to the precision.
func writeBoardCSV(w io.Writer, v schema.Variant, board schema.Board, fmtFloat func(float64) string, fmtOptional func(float64, bool) string) error {
	return writeCSVWithHeader(w, boardCSVHeader(v), func(csvWriter *csv.Writer) error {
		for _, r := range board.Visible {
			rec := []string{strconv.Itoa(r.Rank), r.ID, r.Name}
			for _, f := range v.Fields {
				switch f.Kind {
				case schema.RankKind, schema.NameKind:
					continue
				case schema.TextKind:
					rec = append(rec, r.Text[f.Key])
				case schema.PairKind:
					p := r.Pairs[f.Key]
					rec = append(rec, fmtFloat(p.Singleton), fmtFloat(p.Multiturn))
				case schema.MetricKind:
					value, ok := r.Metrics[f.Key]
					rec = append(rec, fmtOptional(value, ok))
				default:
					rec = append(rec, fmtFloat(r.NumberValue(f)))
				}
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBoardTable generates and writes the human-readable table.
func writeBoardTable(w io.Writer, v schema.Variant, board schema.Board, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Rank", v.NameField().Label}
	numericCols, textCols := 0, 1
	for _, f := range v.Fields {
		switch {
		case f.Kind == schema.RankKind || f.Kind == schema.NameKind:
			continue
		case f.Kind.IsNumeric():
			numericCols++
		default:
			textCols++
		}
		headers = append(headers, f.Label)
	}
	table.Header(headers)
	maxText := GetMaxTableTextWidth(cfg, numericCols, textCols)

	// 2. Configure alignment to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	data := make([][]string, 0, len(board.Rows))
	for _, row := range board.Rows {
		rank := contract.GetPlainRank(row, cfg.UseEmojis)
		if cfg.UseColors {
			rank = contract.GetColorRank(row, cfg.UseEmojis)
		}
		line := []string{rank, contract.TruncateText(row.Name, maxText)}
		for _, c := range row.Cells {
			if c.Numeric {
				line = append(line, c.Value)
			} else {
				line = append(line, contract.TruncateText(c.Value, maxText))
			}
		}
		data = append(data, line)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d %s records (sort: %s %s%s)\n",
		len(board.Rows), board.Total, board.Title, board.Sort.Field, board.Sort.Direction, describeQuery(board.Query)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Loaded in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// describeQuery renders the active search and filter for the table footer.
func describeQuery(q schema.Query) string {
	out := ""
	if q.Search != "" {
		out += fmt.Sprintf(", search: %q", q.Search)
	}
	if q.FilterType != "" && q.FilterType != schema.FilterAll {
		out += fmt.Sprintf(", filter: %s", q.FilterType)
	}
	return out
}
