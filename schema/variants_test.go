package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupVariant(t *testing.T) {
	tests := []struct {
		input    string
		expected VariantName
		wantErr  bool
	}{
		{"models", ModelsVariant, false},
		{"LogicKor", LogicKorVariant, false},
		{" rag ", RAGVariant, false},
		{"arena", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := LookupVariant(tt.input)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown leaderboard")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Name)
		})
	}
}

func TestVariants_Shape(t *testing.T) {
	for _, v := range AllVariants {
		t.Run(string(v.Name), func(t *testing.T) {
			assert.Len(t, v.FieldsOf(RankKind), 1)
			assert.Len(t, v.FieldsOf(NameKind), 1)
			assert.Len(t, v.FieldsOf(AggregateKind), 1)
			assert.NotEmpty(t, v.SearchKeys)
			for _, key := range v.SearchKeys {
				_, ok := v.Field(key)
				assert.True(t, ok, "search key %s", key)
			}
			_, ok := v.Field(v.DefaultSort.Field)
			assert.True(t, ok)
			assert.Positive(t, v.Precision)
		})
	}

	assert.Len(t, Models.FieldsOf(ScoreKind), 6)
	assert.Len(t, LogicKor.FieldsOf(PairKind), 6)
	assert.Len(t, RAG.FieldsOf(ScoreKind), 5)
	assert.Equal(t, []string{"service", "parser"}, RAG.SearchKeys)
}

func TestVariant_FormFields(t *testing.T) {
	fields := LogicKor.FormFields()
	// name plus two inputs per category
	require.Len(t, fields, 13)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "math_singleton", fields[1].Name)
	assert.Equal(t, "math_multiturn", fields[2].Name)
	assert.Equal(t, 10.0, fields[1].Max)

	models := Models.FormFields()
	names := make([]string, len(models))
	for i, f := range models {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"model", "type", "ifeval", "bbh", "math", "gpqa", "musr", "mmlu", "co2"}, names)
	assert.False(t, models[1].Required)
	assert.Equal(t, "number", models[2].Type)
}

func TestBenchmarkRecord_Values(t *testing.T) {
	r := BenchmarkRecord{
		Name:  "EXAONE",
		Pairs: map[string]Pair{"math": {Singleton: 8, Multiturn: 6}, "coding": {Singleton: 6, Multiturn: 8}},
		Rank:  3,
	}
	math, _ := LogicKor.Field("math")
	assert.Equal(t, 7.0, r.NumberValue(math))

	single, _ := LogicKor.Field(SingletonHalf)
	assert.Equal(t, 7.0, r.NumberValue(single))

	rank, _ := LogicKor.Field("rank")
	assert.Equal(t, 3.0, r.NumberValue(rank))

	name := LogicKor.NameField()
	assert.Equal(t, "EXAONE", r.TextValue(name))

	assert.Equal(t, 0.0, BenchmarkRecord{}.SplitMean(MultiturnHalf))
}

func TestBenchmarkRecord_Clone(t *testing.T) {
	r := BenchmarkRecord{Scores: map[string]float64{"bbh": 1}, Text: map[string]string{"type": "gpt"}}
	c := r.Clone()
	c.Scores["bbh"] = 2
	c.Text["type"] = "llama"
	assert.Equal(t, 1.0, r.Scores["bbh"])
	assert.Equal(t, "gpt", r.Text["type"])
}

func TestDirection_Reverse(t *testing.T) {
	assert.Equal(t, Desc, Asc.Reverse())
	assert.Equal(t, Asc, Desc.Reverse())
	assert.True(t, PairKind.IsNumeric())
	assert.False(t, RankKind.IsNumeric())
	assert.False(t, TextKind.IsNumeric())
}
