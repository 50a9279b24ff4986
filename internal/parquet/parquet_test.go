package parquet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/benchboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardCellStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(LeaderboardCell))
	require.NotNil(t, s)

	for _, colName := range []string{"variant", "rank", "record_id", "name", "field", "number_value", "text_value"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestBoardSummaryRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(BoardSummaryRow))
	for _, colName := range []string{"variant", "title", "records", "average", "top_name", "top_aggregate"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestCellsFromRecords(t *testing.T) {
	t.Run("models", func(t *testing.T) {
		r := schema.BenchmarkRecord{
			ID:        "id-1",
			Name:      "Model-A",
			Rank:      1,
			Text:      map[string]string{"type": "chat"},
			Scores:    map[string]float64{"ifeval": 80, "bbh": 70, "math": 60, "gpqa": 50, "musr": 40, "mmlu": 30},
			Aggregate: 55,
		}
		cells := CellsFromRecords(schema.Models, []schema.BenchmarkRecord{r})
		// type + average + six scores, no co2
		require.Len(t, cells, 8)
		assert.Equal(t, "type", cells[0].Field)
		require.NotNil(t, cells[0].TextValue)
		assert.Equal(t, "chat", *cells[0].TextValue)
		assert.Nil(t, cells[0].NumberValue)
		assert.Equal(t, "average", cells[1].Field)
		assert.Equal(t, 55.0, *cells[1].NumberValue)
		for _, c := range cells {
			assert.Equal(t, "models", c.Variant)
			assert.Equal(t, int32(1), c.Rank)
			assert.Equal(t, "Model-A", c.Name)
			assert.NotEqual(t, "co2", c.Field)
		}
	})

	t.Run("logickor pairs and splits", func(t *testing.T) {
		pairs := map[string]schema.Pair{}
		for _, f := range schema.LogicKor.FieldsOf(schema.PairKind) {
			pairs[f.Key] = schema.Pair{Singleton: 8, Multiturn: 6}
		}
		r := schema.BenchmarkRecord{ID: "k", Name: "Kor", Rank: 2, Pairs: pairs, Aggregate: 7}
		cells := CellsFromRecords(schema.LogicKor, []schema.BenchmarkRecord{r})
		// 6 pairs x 2 halves + 2 splits + average
		require.Len(t, cells, 15)
		assert.Equal(t, "math_singleton", cells[0].Field)
		assert.Equal(t, 8.0, *cells[0].NumberValue)
		assert.Equal(t, "math_multiturn", cells[1].Field)
		assert.Equal(t, "singleton", cells[12].Field)
		assert.Equal(t, 8.0, *cells[12].NumberValue)
		assert.Equal(t, "multiturn", cells[13].Field)
		assert.Equal(t, 6.0, *cells[13].NumberValue)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, CellsFromRecords(schema.RAG, nil))
	})
}

func TestWriteLeaderboardParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "board.parquet")
	value := 90.5
	text := "chat"
	data := []LeaderboardCell{
		{Variant: "models", Rank: 1, RecordID: "a", Name: "Model-A", Field: "average", NumberValue: &value},
		{Variant: "models", Rank: 1, RecordID: "a", Name: "Model-A", Field: "type", TextValue: &text},
	}

	require.NoError(t, WriteLeaderboardParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	got, err := parquet.ReadFile[LeaderboardCell](outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "average", got[0].Field)
	require.NotNil(t, got[0].NumberValue)
	assert.Equal(t, 90.5, *got[0].NumberValue)
	assert.Nil(t, got[0].TextValue)
	require.NotNil(t, got[1].TextValue)
	assert.Equal(t, "chat", *got[1].TextValue)
}

func TestWriteSummaryParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "summary.parquet")
	rows := SummaryRows([]schema.BoardSummary{
		{Variant: schema.ModelsVariant, Title: "Model Comparison", Records: 2, Average: 92.5, TopName: "Model-B", TopAggregate: 95},
		{Variant: schema.RAGVariant, Title: "RAG Evaluation"},
	})
	require.Nil(t, rows[1].TopName)

	require.NoError(t, WriteSummaryParquet(rows, outputPath))

	got, err := parquet.ReadFile[BoardSummaryRow](outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "models", got[0].Variant)
	assert.Equal(t, int32(2), got[0].Records)
	require.NotNil(t, got[0].TopName)
	assert.Equal(t, "Model-B", *got[0].TopName)
	assert.Nil(t, got[1].TopName)
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteLeaderboardParquet(nil, filepath.Join(t.TempDir(), "missing", "board.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}
