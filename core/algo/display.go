package algo

import (
	"fmt"
	"strconv"

	"github.com/huangsam/benchboard/schema"
)

// notAvailable is shown for optional values that were never recorded.
const notAvailable = "N/A"

// BadgeFor maps the podium ranks to their badge tier.
func BadgeFor(rank int) schema.BadgeTier {
	switch rank {
	case 1:
		return schema.TrophyBadge
	case 2:
		return schema.StarBadge
	case 3:
		return schema.SparklesBadge
	default:
		return schema.NoBadge
	}
}

// FormatNumber renders a value with fixed decimals and an optional unit suffix.
func FormatNumber(value float64, precision int, unit string) string {
	return fmt.Sprintf("%.*f", precision, value) + unit
}

// ToDisplayRow formats a ranked record. A precision <= 0 selects the variant default.
func ToDisplayRow(v schema.Variant, r schema.BenchmarkRecord, precision int) schema.DisplayRow {
	if precision <= 0 {
		precision = v.Precision
	}
	row := schema.DisplayRow{
		ID:        r.ID,
		Rank:      r.Rank,
		RankLabel: strconv.Itoa(r.Rank),
		Badge:     BadgeFor(r.Rank),
		Name:      r.Name,
	}
	for _, f := range v.Fields {
		if f.Kind == schema.RankKind || f.Kind == schema.NameKind {
			continue
		}
		row.Cells = append(row.Cells, schema.DisplayCell{
			Key:     f.Key,
			Label:   f.Label,
			Value:   formatCell(f, r, precision),
			Numeric: f.Kind.IsNumeric(),
		})
	}
	return row
}

// ToDisplayRows formats records in their given order.
func ToDisplayRows(v schema.Variant, records []schema.BenchmarkRecord, precision int) []schema.DisplayRow {
	rows := make([]schema.DisplayRow, len(records))
	for i, r := range records {
		rows[i] = ToDisplayRow(v, r, precision)
	}
	return rows
}

func formatCell(f schema.FieldSpec, r schema.BenchmarkRecord, precision int) string {
	switch f.Kind {
	case schema.TextKind:
		if text := r.Text[f.Key]; text != "" {
			return text
		}
		if f.Optional {
			return notAvailable
		}
		return ""
	case schema.PairKind:
		p := r.Pairs[f.Key]
		return FormatNumber(p.Singleton, precision, f.Unit) + " / " + FormatNumber(p.Multiturn, precision, f.Unit)
	case schema.MetricKind:
		value, ok := r.Metrics[f.Key]
		if !ok {
			return notAvailable
		}
		return FormatNumber(value, precision, f.Unit)
	default:
		return FormatNumber(r.NumberValue(f), precision, f.Unit)
	}
}
