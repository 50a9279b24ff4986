package schema

import (
	"fmt"
	"strings"
)

// FieldSpec describes one column of a leaderboard.
type FieldSpec struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Unit     string    `json:"unit,omitempty"`
	Min      float64   `json:"min,omitempty"`
	Max      float64   `json:"max,omitempty"`
	Required bool      `json:"required,omitempty"`
	Optional bool      `json:"optional,omitempty"` // empty text renders as N/A
}

// Column returns the store column for a scalar field.
func (f FieldSpec) Column() string {
	return f.Key
}

// PairColumns returns the store columns backing a pair field.
func (f FieldSpec) PairColumns() (singleton, multiturn string) {
	return f.Key + "_" + SingletonHalf, f.Key + "_" + MultiturnHalf
}

// FormField is one input of the score submission form.
type FormField struct {
	Name     string  `json:"name"`
	Label    string  `json:"label"`
	Type     string  `json:"type"` // text or number
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Required bool    `json:"required"`
}

// Variant configures the table engine for one leaderboard.
type Variant struct {
	Name            VariantName `json:"name"`
	Table           string      `json:"table"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Formula         Formula     `json:"formula"`
	Precision       int         `json:"precision"`
	Fields          []FieldSpec `json:"fields"`
	SearchKeys      []string    `json:"search_keys"`
	CategoryKey     string      `json:"category_key,omitempty"`
	StoredAggregate bool        `json:"stored_aggregate"`
	DefaultSort     SortSpec    `json:"default_sort"`
}

// Field returns the field with the given key.
func (v Variant) Field(key string) (FieldSpec, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldsOf returns the fields of the given kinds in display order.
func (v Variant) FieldsOf(kinds ...FieldKind) []FieldSpec {
	var out []FieldSpec
	for _, f := range v.Fields {
		for _, k := range kinds {
			if f.Kind == k {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// NameField returns the field holding the display name.
func (v Variant) NameField() FieldSpec {
	if f := v.FieldsOf(NameKind); len(f) > 0 {
		return f[0]
	}
	return FieldSpec{Key: "name", Label: "Name", Kind: NameKind}
}

// AggregateField returns the field holding the composite score.
func (v Variant) AggregateField() FieldSpec {
	if f := v.FieldsOf(AggregateKind); len(f) > 0 {
		return f[0]
	}
	return FieldSpec{Key: "aggregate", Label: "Aggregate", Kind: AggregateKind}
}

// SortableKeys lists every field key accepted as a sort field.
func (v Variant) SortableKeys() []string {
	keys := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// FormFields returns the submission form for this variant.
// Pair fields expand to one input per half.
func (v Variant) FormFields() []FormField {
	var out []FormField
	for _, f := range v.Fields {
		switch f.Kind {
		case NameKind, TextKind:
			out = append(out, FormField{Name: f.Key, Label: f.Label, Type: "text", Required: f.Required})
		case ScoreKind, MetricKind:
			out = append(out, FormField{Name: f.Key, Label: f.Label, Type: "number", Min: f.Min, Max: f.Max, Required: f.Required})
		case PairKind:
			s, m := f.PairColumns()
			out = append(out,
				FormField{Name: s, Label: f.Label + " (singleton)", Type: "number", Min: f.Min, Max: f.Max, Required: f.Required},
				FormField{Name: m, Label: f.Label + " (multiturn)", Type: "number", Min: f.Min, Max: f.Max, Required: f.Required},
			)
		}
	}
	return out
}

func scoreField(key, label, unit string, maxValue float64) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: ScoreKind, Unit: unit, Min: 0, Max: maxValue, Required: true}
}

func pairField(key, label string) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: PairKind, Min: 0, Max: 10, Required: true}
}

func textField(key, label string, required bool) FieldSpec {
	return FieldSpec{Key: key, Label: label, Kind: TextKind, Required: required, Optional: !required}
}

var rankSpec = FieldSpec{Key: "rank", Label: "Rank", Kind: RankKind}

// Models is the general language model comparison board.
var Models = Variant{
	Name:        ModelsVariant,
	Table:       "models",
	Title:       "Model Comparison",
	Description: "General LLM benchmark scores averaged over six evaluations.",
	Formula:     FlatMean,
	Precision:   2,
	Fields: []FieldSpec{
		rankSpec,
		{Key: "model", Label: "Model", Kind: NameKind, Required: true},
		textField("type", "Type", false),
		{Key: "average", Label: "Average", Kind: AggregateKind, Unit: "%"},
		scoreField("ifeval", "IFEval", "%", 100),
		scoreField("bbh", "BBH", "%", 100),
		scoreField("math", "MATH", "%", 100),
		scoreField("gpqa", "GPQA", "%", 100),
		scoreField("musr", "MUSR", "%", 100),
		scoreField("mmlu", "MMLU", "%", 100),
		{Key: "co2", Label: "CO2", Kind: MetricKind, Unit: "kg", Min: 0},
	},
	SearchKeys:  []string{"model"},
	CategoryKey: "type",
	DefaultSort: SortSpec{Field: "rank", Direction: Asc},
}

// LogicKor is the Korean logical reasoning board with singleton and multiturn scores.
var LogicKor = Variant{
	Name:        LogicKorVariant,
	Table:       "logickor",
	Title:       "LogicKor",
	Description: "Korean reasoning benchmark, mean of singleton and multiturn category scores.",
	Formula:     TwoLevelMean,
	Precision:   2,
	Fields: []FieldSpec{
		rankSpec,
		{Key: "name", Label: "Model", Kind: NameKind, Required: true},
		pairField("math", "Math"),
		pairField("grammar", "Grammar"),
		pairField("comprehension", "Comprehension"),
		pairField("writing", "Writing"),
		pairField("reasoning", "Reasoning"),
		pairField("coding", "Coding"),
		{Key: SingletonHalf, Label: "Singleton", Kind: SplitKind},
		{Key: MultiturnHalf, Label: "Multiturn", Kind: SplitKind},
		{Key: "average", Label: "Average", Kind: AggregateKind},
	},
	SearchKeys:  []string{"name"},
	DefaultSort: SortSpec{Field: "rank", Direction: Asc},
}

// RAG is the retrieval augmented generation component board.
var RAG = Variant{
	Name:        RAGVariant,
	Table:       "rag",
	Title:       "RAG Evaluation",
	Description: "RAG service configurations scored over five domains (max 300).",
	Formula:     DomainSum,
	Precision:   1,
	Fields: []FieldSpec{
		rankSpec,
		{Key: "service", Label: "Service", Kind: NameKind, Required: true},
		textField("generator", "Generator", true),
		textField("parser", "Parser", true),
		textField("semantic", "Semantic", false),
		textField("lexical", "Lexical", false),
		textField("web", "Web", false),
		textField("rerank", "Rerank", false),
		textField("fusion", "Fusion", false),
		scoreField("finance", "Finance", "", 60),
		scoreField("public", "Public", "", 60),
		scoreField("medical", "Medical", "", 60),
		scoreField("law", "Law", "", 60),
		scoreField("commerce", "Commerce", "", 60),
		{Key: "total", Label: "Total", Kind: AggregateKind},
	},
	SearchKeys:      []string{"service", "parser"},
	StoredAggregate: true,
	DefaultSort:     SortSpec{Field: "rank", Direction: Asc},
}

// AllVariants lists every leaderboard in display order.
var AllVariants = []Variant{Models, LogicKor, RAG}

// LookupVariant resolves a variant by name, case-insensitively.
func LookupVariant(name string) (Variant, error) {
	normalized := VariantName(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range AllVariants {
		if v.Name == normalized {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown leaderboard '%s'. must be models, logickor, rag", name)
}
