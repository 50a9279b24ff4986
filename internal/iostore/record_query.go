package iostore

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/benchboard/schema"
)

// Columns present in every leaderboard table.
const (
	seqColumn = "seq"
	idColumn  = "id"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// column maps one stored column to a record value.
type column struct {
	name  string
	field schema.FieldSpec
	half  string // set for pair columns
}

// storedColumns returns the data columns of a variant table in field order.
// Rank and split fields are derived and not stored.
func storedColumns(v schema.Variant) []column {
	var cols []column
	for _, f := range v.Fields {
		switch f.Kind {
		case schema.NameKind, schema.TextKind, schema.ScoreKind, schema.MetricKind, schema.AggregateKind:
			cols = append(cols, column{name: f.Column(), field: f})
		case schema.PairKind:
			s, m := f.PairColumns()
			cols = append(cols,
				column{name: s, field: f, half: schema.SingletonHalf},
				column{name: m, field: f, half: schema.MultiturnHalf},
			)
		}
	}
	return cols
}

// validateTableName validates that the name is a safe SQL identifier.
// It ensures the name consists only of alphanumeric characters and underscores,
// starting with a letter or underscore, to prevent SQL injection.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted identifier for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// getPlaceholder returns the n-th (1-based) parameter placeholder for the backend.
func getPlaceholder(backend schema.DatabaseBackend, n int) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getSelectQuery returns the SELECT query for every row of the variant table.
// A nil order keeps arrival order.
func getSelectQuery(v schema.Variant, backend schema.DatabaseBackend, order *schema.SortSpec) string {
	cols := storedColumns(v)
	names := make([]string, 0, len(cols)+1)
	names = append(names, quoteTableName(idColumn, backend))
	for _, c := range cols {
		names = append(names, quoteTableName(c.name, backend))
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(names, ", "), quoteTableName(v.Table, backend), getOrderByClause(v, backend, order))
}

// getOrderByClause returns the ORDER BY terms for a sort spec.
// Pair fields order by the mean of both halves, split fields by the mean of one half,
// and rank by the aggregate. Arrival order breaks ties.
func getOrderByClause(v schema.Variant, backend schema.DatabaseBackend, order *schema.SortSpec) string {
	seq := quoteTableName(seqColumn, backend) + " ASC"
	if order == nil {
		return seq
	}
	f, ok := v.Field(order.Field)
	if !ok {
		return seq
	}

	dir := "ASC"
	if order.Direction == schema.Desc {
		dir = "DESC"
	}
	q := func(name string) string { return quoteTableName(name, backend) }

	var expr string
	switch f.Kind {
	case schema.RankKind:
		// Rank 1 holds the highest aggregate.
		expr = q(v.AggregateField().Column())
		if order.Direction == schema.Desc {
			dir = "ASC"
		} else {
			dir = "DESC"
		}
	case schema.PairKind:
		s, m := f.PairColumns()
		expr = fmt.Sprintf("(%s + %s) / 2", q(s), q(m))
	case schema.SplitKind:
		pairs := v.FieldsOf(schema.PairKind)
		terms := make([]string, len(pairs))
		for i, p := range pairs {
			terms[i] = q(p.Key + "_" + f.Key)
		}
		expr = fmt.Sprintf("(%s) / %d", strings.Join(terms, " + "), len(pairs))
	default:
		expr = q(f.Column())
	}
	return fmt.Sprintf("%s %s, %s", expr, dir, seq)
}

// getInsertQuery returns the INSERT query for one row of the variant table.
func getInsertQuery(v schema.Variant, backend schema.DatabaseBackend) string {
	cols := storedColumns(v)
	names := make([]string, 0, len(cols)+1)
	placeholders := make([]string, 0, len(cols)+1)
	names = append(names, quoteTableName(idColumn, backend))
	placeholders = append(placeholders, getPlaceholder(backend, 1))
	for i, c := range cols {
		names = append(names, quoteTableName(c.name, backend))
		placeholders = append(placeholders, getPlaceholder(backend, i+2))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(v.Table, backend), strings.Join(names, ", "), strings.Join(placeholders, ", "))
}

// insertArgs returns the INSERT arguments of a record in column order.
func insertArgs(v schema.Variant, r schema.BenchmarkRecord) []any {
	cols := storedColumns(v)
	args := make([]any, 0, len(cols)+1)
	args = append(args, r.ID)
	for _, c := range cols {
		switch c.field.Kind {
		case schema.NameKind:
			args = append(args, r.Name)
		case schema.TextKind:
			args = append(args, r.Text[c.field.Key])
		case schema.ScoreKind:
			args = append(args, r.Scores[c.field.Key])
		case schema.MetricKind:
			if value, ok := r.Metrics[c.field.Key]; ok {
				args = append(args, value)
			} else {
				args = append(args, nil)
			}
		case schema.PairKind:
			args = append(args, r.Pairs[c.field.Key].Half(c.half))
		case schema.AggregateKind:
			args = append(args, r.Aggregate)
		}
	}
	return args
}

// rowScanner collects the scan targets of one SELECT row and maps them to a record.
type rowScanner struct {
	cols  []column
	id    string
	texts []string
	nums  []float64
	nulls []*float64
	dests []any
}

func newRowScanner(v schema.Variant) *rowScanner {
	cols := storedColumns(v)
	rs := &rowScanner{
		cols:  cols,
		texts: make([]string, len(cols)),
		nums:  make([]float64, len(cols)),
		nulls: make([]*float64, len(cols)),
	}
	rs.dests = make([]any, 0, len(cols)+1)
	rs.dests = append(rs.dests, &rs.id)
	for i, c := range cols {
		switch c.field.Kind {
		case schema.NameKind, schema.TextKind:
			rs.dests = append(rs.dests, &rs.texts[i])
		case schema.MetricKind:
			rs.dests = append(rs.dests, &rs.nulls[i])
		default:
			rs.dests = append(rs.dests, &rs.nums[i])
		}
	}
	return rs
}

// record builds a record from the last scanned row.
func (rs *rowScanner) record() schema.BenchmarkRecord {
	r := schema.BenchmarkRecord{
		ID:      rs.id,
		Text:    map[string]string{},
		Scores:  map[string]float64{},
		Pairs:   map[string]schema.Pair{},
		Metrics: map[string]float64{},
	}
	for i, c := range rs.cols {
		key := c.field.Key
		switch c.field.Kind {
		case schema.NameKind:
			r.Name = rs.texts[i]
		case schema.TextKind:
			if rs.texts[i] != "" {
				r.Text[key] = rs.texts[i]
			}
		case schema.ScoreKind:
			r.Scores[key] = rs.nums[i]
		case schema.MetricKind:
			if rs.nulls[i] != nil {
				r.Metrics[key] = *rs.nulls[i]
			}
		case schema.PairKind:
			p := r.Pairs[key]
			if c.half == schema.MultiturnHalf {
				p.Multiturn = rs.nums[i]
			} else {
				p.Singleton = rs.nums[i]
			}
			r.Pairs[key] = p
		case schema.AggregateKind:
			r.Aggregate = rs.nums[i]
		}
	}
	return r
}
