package algo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/benchboard/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Pipeline produces the visible, ordered subset of a ranked leaderboard.
// It never recomputes ranks and never mutates its input.
type Pipeline struct {
	variant schema.Variant
	locale  language.Tag
}

// NewPipeline creates a pipeline for the variant. The locale drives text collation.
func NewPipeline(v schema.Variant, locale language.Tag) *Pipeline {
	return &Pipeline{variant: v, locale: locale}
}

// Apply filters the records by the query and orders them by the sort spec.
// An unknown sort field falls back to the variant default.
func (p *Pipeline) Apply(records []schema.BenchmarkRecord, q schema.Query, sort schema.SortSpec) []schema.BenchmarkRecord {
	return p.Sort(p.Filter(records, q), sort)
}

// Filter keeps the records whose search fields contain the search text, ignoring case,
// and that pass the filter type. An empty query keeps everything.
func (p *Pipeline) Filter(records []schema.BenchmarkRecord, q schema.Query) []schema.BenchmarkRecord {
	folder := cases.Fold()
	needle := folder.String(q.Search)

	searchFields := make([]schema.FieldSpec, 0, len(p.variant.SearchKeys))
	for _, key := range p.variant.SearchKeys {
		if f, ok := p.variant.Field(key); ok {
			searchFields = append(searchFields, f)
		}
	}

	out := make([]schema.BenchmarkRecord, 0, len(records))
	for _, r := range records {
		if !matchesFilterType(p.variant, r, q.FilterType) {
			continue
		}
		if needle == "" || p.matchesSearch(folder, searchFields, r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func (p *Pipeline) matchesSearch(folder cases.Caser, fields []schema.FieldSpec, r schema.BenchmarkRecord, needle string) bool {
	for _, f := range fields {
		if strings.Contains(folder.String(r.TextValue(f)), needle) {
			return true
		}
	}
	return false
}

func matchesFilterType(v schema.Variant, r schema.BenchmarkRecord, filterType string) bool {
	switch ft := strings.ToLower(strings.TrimSpace(filterType)); ft {
	case "", schema.FilterAll:
		return true
	case schema.FilterTop10:
		return r.Rank >= 1 && r.Rank <= 10
	default:
		return v.CategoryKey != "" && strings.EqualFold(r.Text[v.CategoryKey], ft)
	}
}

// Sort returns a new slice ordered by the sort spec. Ties are broken by rank
// ascending so the order is total and a double direction flip is a no-op.
func (p *Pipeline) Sort(records []schema.BenchmarkRecord, sort schema.SortSpec) []schema.BenchmarkRecord {
	field, ok := p.variant.Field(sort.Field)
	if !ok {
		sort = p.variant.DefaultSort
		field, _ = p.variant.Field(sort.Field)
	}
	compare := p.comparator(field)
	sign := 1
	if sort.Direction == schema.Desc {
		sign = -1
	}

	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b schema.BenchmarkRecord) int {
		if c := sign * compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Rank, b.Rank)
	})
	return out
}

func (p *Pipeline) comparator(f schema.FieldSpec) func(a, b schema.BenchmarkRecord) int {
	switch {
	case f.Kind == schema.RankKind:
		return func(a, b schema.BenchmarkRecord) int {
			return cmp.Compare(a.Rank, b.Rank)
		}
	case f.Kind.IsNumeric():
		return func(a, b schema.BenchmarkRecord) int {
			return cmp.Compare(a.NumberValue(f), b.NumberValue(f))
		}
	default:
		collator := collate.New(p.locale)
		return func(a, b schema.BenchmarkRecord) int {
			return collator.CompareString(a.TextValue(f), b.TextValue(f))
		}
	}
}

// DefaultDirection is the direction a column starts with when it becomes the sort field:
// descending for numeric fields, ascending for rank and text fields.
func DefaultDirection(f schema.FieldSpec) schema.Direction {
	if f.Kind.IsNumeric() {
		return schema.Desc
	}
	return schema.Asc
}

// ToggleSort applies a click on a column header. Clicking the active column flips the
// direction; clicking another column selects it with its default direction.
func ToggleSort(v schema.Variant, current schema.SortSpec, key string) (schema.SortSpec, error) {
	f, ok := v.Field(key)
	if !ok {
		return current, fmt.Errorf("unknown sort field '%s' for %s. must be one of %s", key, v.Name, strings.Join(v.SortableKeys(), ", "))
	}
	if current.Field == key {
		return schema.SortSpec{Field: key, Direction: current.Direction.Reverse()}, nil
	}
	return schema.SortSpec{Field: key, Direction: DefaultDirection(f)}, nil
}

// ResolveSort validates a sort field and direction for the variant.
// An empty field selects the variant default, an empty direction the field default.
func ResolveSort(v schema.Variant, key string, direction string) (schema.SortSpec, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = v.DefaultSort.Field
	}
	f, ok := v.Field(key)
	if !ok {
		return schema.SortSpec{}, fmt.Errorf("unknown sort field '%s' for %s. must be one of %s", key, v.Name, strings.Join(v.SortableKeys(), ", "))
	}
	dir := schema.Direction(strings.ToLower(strings.TrimSpace(direction)))
	if dir == "" {
		return schema.SortSpec{Field: key, Direction: DefaultDirection(f)}, nil
	}
	if _, ok := schema.ValidDirections[dir]; !ok {
		return schema.SortSpec{}, fmt.Errorf("invalid direction '%s'. must be asc, desc", direction)
	}
	return schema.SortSpec{Field: key, Direction: dir}, nil
}

// ValidateFilterType checks that a filter type can apply to the variant.
func ValidateFilterType(v schema.Variant, filterType string) error {
	switch strings.ToLower(strings.TrimSpace(filterType)) {
	case "", schema.FilterAll, schema.FilterTop10:
		return nil
	}
	if v.CategoryKey == "" {
		return fmt.Errorf("filter type '%s' is not supported by %s. must be all, top10", filterType, v.Name)
	}
	return nil
}
