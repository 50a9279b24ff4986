package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintVariants outputs the leaderboard definitions, dispatching based on the output format configured.
func PrintVariants(variants []schema.Variant, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, variants)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVariantsCSV(w, variants)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for leaderboard definitions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVariantsTable(w, variants, cfg)
		}, "Wrote table")
	}
}

func fieldKeys(v schema.Variant) []string {
	keys := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		if f.Kind != schema.RankKind {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func writeVariantsTable(w io.Writer, variants []schema.Variant, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Title", "Formula", "Precision", "Default Sort", "Description"})

	maxText := GetMaxTableTextWidth(cfg, 2, 4)
	data := make([][]string, 0, len(variants))
	for _, v := range variants {
		data = append(data, []string{
			string(v.Name),
			v.Title,
			string(v.Formula),
			strconv.Itoa(v.Precision),
			fmt.Sprintf("%s %s", v.DefaultSort.Field, v.DefaultSort.Direction),
			contract.TruncateText(v.Description, maxText),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeVariantsCSV(w io.Writer, variants []schema.Variant) error {
	header := []string{"name", "title", "formula", "precision", "default_sort", "fields"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, v := range variants {
			rec := []string{
				string(v.Name),
				v.Title,
				string(v.Formula),
				strconv.Itoa(v.Precision),
				v.DefaultSort.Field + " " + string(v.DefaultSort.Direction),
				strings.Join(fieldKeys(v), "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
