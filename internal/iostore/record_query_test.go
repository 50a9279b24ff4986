package iostore

import (
	"testing"

	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple", "models", false},
		{"valid with underscore", "rag_v2", false},
		{"valid leading underscore", "_private", false},
		{"empty", "", true},
		{"leading digit", "1models", true},
		{"has space", "my table", true},
		{"injection attempt", "models; DROP TABLE rag", true},
		{"has quote", "models\"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "\"models\"", quoteTableName("models", schema.SQLiteBackend))
	assert.Equal(t, "\"models\"", quoteTableName("models", schema.PostgreSQLBackend))
	assert.Equal(t, "`models`", quoteTableName("models", schema.MySQLBackend))
}

func TestGetPlaceholder(t *testing.T) {
	assert.Equal(t, "?", getPlaceholder(schema.SQLiteBackend, 3))
	assert.Equal(t, "?", getPlaceholder(schema.MySQLBackend, 3))
	assert.Equal(t, "$3", getPlaceholder(schema.PostgreSQLBackend, 3))
}

func TestStoredColumns(t *testing.T) {
	names := func(v schema.Variant) []string {
		var out []string
		for _, c := range storedColumns(v) {
			out = append(out, c.name)
		}
		return out
	}

	assert.Equal(t, []string{"model", "type", "average", "ifeval", "bbh", "math", "gpqa", "musr", "mmlu", "co2"}, names(schema.Models))

	logickor := names(schema.LogicKor)
	assert.Len(t, logickor, 14)
	assert.Equal(t, "name", logickor[0])
	assert.Equal(t, "math_singleton", logickor[1])
	assert.Equal(t, "math_multiturn", logickor[2])
	assert.Equal(t, "average", logickor[13])
	assert.NotContains(t, logickor, "singleton", "split fields are derived")

	rag := names(schema.RAG)
	assert.Equal(t, "service", rag[0])
	assert.Equal(t, "total", rag[len(rag)-1])
	assert.NotContains(t, rag, "rank")
}

func TestGetOrderByClause(t *testing.T) {
	tests := []struct {
		name    string
		variant schema.Variant
		backend schema.DatabaseBackend
		order   *schema.SortSpec
		want    string
	}{
		{"no order", schema.Models, schema.SQLiteBackend, nil, `"seq" ASC`},
		{"unknown field", schema.Models, schema.SQLiteBackend, &schema.SortSpec{Field: "nope", Direction: schema.Asc}, `"seq" ASC`},
		{"rank asc is aggregate desc", schema.Models, schema.SQLiteBackend, &schema.SortSpec{Field: "rank", Direction: schema.Asc}, `"average" DESC, "seq" ASC`},
		{"rank desc is aggregate asc", schema.RAG, schema.MySQLBackend, &schema.SortSpec{Field: "rank", Direction: schema.Desc}, "`total` ASC, `seq` ASC"},
		{"score desc", schema.Models, schema.PostgreSQLBackend, &schema.SortSpec{Field: "bbh", Direction: schema.Desc}, `"bbh" DESC, "seq" ASC`},
		{"text asc", schema.RAG, schema.SQLiteBackend, &schema.SortSpec{Field: "parser", Direction: schema.Asc}, `"parser" ASC, "seq" ASC`},
		{"pair mean", schema.LogicKor, schema.SQLiteBackend, &schema.SortSpec{Field: "math", Direction: schema.Desc}, `("math_singleton" + "math_multiturn") / 2 DESC, "seq" ASC`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getOrderByClause(tt.variant, tt.backend, tt.order))
		})
	}

	t.Run("split mean", func(t *testing.T) {
		clause := getOrderByClause(schema.LogicKor, schema.SQLiteBackend, &schema.SortSpec{Field: "multiturn", Direction: schema.Asc})
		assert.Contains(t, clause, `"math_multiturn" + "grammar_multiturn"`)
		assert.Contains(t, clause, `) / 6 ASC, "seq" ASC`)
		assert.NotContains(t, clause, "singleton")
	})
}

func TestGetInsertQuery(t *testing.T) {
	sqlite := getInsertQuery(schema.Models, schema.SQLiteBackend)
	assert.Equal(t,
		`INSERT INTO "models" ("id", "model", "type", "average", "ifeval", "bbh", "math", "gpqa", "musr", "mmlu", "co2") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sqlite)

	pg := getInsertQuery(schema.Models, schema.PostgreSQLBackend)
	assert.Contains(t, pg, "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)")

	mysql := getInsertQuery(schema.RAG, schema.MySQLBackend)
	assert.Contains(t, mysql, "INSERT INTO `rag` (`id`, `service`, `generator`")
}

func TestInsertArgs(t *testing.T) {
	r := schema.BenchmarkRecord{
		ID:        "id-1",
		Name:      "Model-A",
		Scores:    map[string]float64{"ifeval": 1, "bbh": 2, "math": 3, "gpqa": 4, "musr": 5, "mmlu": 6},
		Aggregate: 3.5,
	}
	args := insertArgs(schema.Models, r)
	assert.Equal(t, []any{"id-1", "Model-A", "", 3.5, 1.0, 2.0, 3.0, 4.0, 5.0, 6.0, nil}, args)

	r.Metrics = map[string]float64{"co2": 1.25}
	args = insertArgs(schema.Models, r)
	assert.Equal(t, 1.25, args[len(args)-1])
}
