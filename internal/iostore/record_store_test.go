package iostore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelRecord returns a models record whose six scores all equal score.
func modelRecord(id, name string, score float64) schema.BenchmarkRecord {
	scores := map[string]float64{}
	for _, f := range schema.Models.FieldsOf(schema.ScoreKind) {
		scores[f.Key] = score
	}
	return schema.BenchmarkRecord{ID: id, Name: name, Scores: scores, Aggregate: score}
}

// newSQLiteStore opens an in-memory SQLite store closed at test end.
func newSQLiteStore(t *testing.T) contract.RecordStore {
	t.Helper()
	store, err := NewRecordStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fetchedNames(records []schema.BenchmarkRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestNewRecordStoreErrors(t *testing.T) {
	_, err := NewRecordStore("oracle", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")

	store, err := NewRecordStore(schema.MemoryBackend, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestSQLiteBackendOperations(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	records, err := store.FetchRecords(ctx, schema.Models, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("a", "Model-A", 90)))
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("b", "Model-B", 95)))
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("c", "Model-C", 90)))

	t.Run("arrival order", func(t *testing.T) {
		records, err := store.FetchRecords(ctx, schema.Models, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Model-A", "Model-B", "Model-C"}, fetchedNames(records))
		assert.Equal(t, 95.0, records[1].Aggregate)
		assert.Equal(t, 95.0, records[1].Scores["mmlu"])
		assert.Zero(t, records[1].Rank, "ranks are assigned after fetch")
	})

	t.Run("rank order", func(t *testing.T) {
		records, err := store.FetchRecords(ctx, schema.Models, &schema.SortSpec{Field: "rank", Direction: schema.Asc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Model-B", "Model-A", "Model-C"}, fetchedNames(records))
	})

	t.Run("name descending", func(t *testing.T) {
		records, err := store.FetchRecords(ctx, schema.Models, &schema.SortSpec{Field: "model", Direction: schema.Desc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Model-C", "Model-B", "Model-A"}, fetchedNames(records))
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := store.InsertRecord(ctx, schema.Models, modelRecord("a", "Model-A", 90))
		assert.Error(t, err)
	})

	t.Run("empty id", func(t *testing.T) {
		err := store.InsertRecord(ctx, schema.Models, modelRecord("", "Model-D", 90))
		assert.Error(t, err)
	})

	t.Run("other tables untouched", func(t *testing.T) {
		records, err := store.FetchRecords(ctx, schema.RAG, nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestSQLitePairsAndMetrics(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	pairs := map[string]schema.Pair{}
	for i, f := range schema.LogicKor.FieldsOf(schema.PairKind) {
		pairs[f.Key] = schema.Pair{Singleton: float64(i + 1), Multiturn: 10 - float64(i)}
	}
	want := schema.BenchmarkRecord{
		ID:        "pair-1",
		Name:      "Kor-1",
		Text:      map[string]string{},
		Scores:    map[string]float64{},
		Pairs:     pairs,
		Metrics:   map[string]float64{},
		Aggregate: 6.5,
	}
	require.NoError(t, store.InsertRecord(ctx, schema.LogicKor, want))

	records, err := store.FetchRecords(ctx, schema.LogicKor, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Errorf("logickor record mismatch (-want +got):\n%s", diff)
	}

	withCO2 := modelRecord("m1", "Green", 50)
	withCO2.Text = map[string]string{"type": "pretrained"}
	withCO2.Metrics = map[string]float64{"co2": 1.25}
	require.NoError(t, store.InsertRecord(ctx, schema.Models, withCO2))
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("m2", "Unknown", 40)))

	models, err := store.FetchRecords(ctx, schema.Models, nil)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, 1.25, models[0].Metrics["co2"])
	assert.Equal(t, "pretrained", models[0].Text["type"])
	_, ok := models[1].Metrics["co2"]
	assert.False(t, ok, "missing metric stays missing")
	_, ok = models[1].Text["type"]
	assert.False(t, ok, "empty optional text stays missing")
}

func TestSQLiteStoredTotal(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	r := schema.BenchmarkRecord{
		ID:        "rag-1",
		Name:      "svc",
		Text:      map[string]string{"generator": "gpt", "parser": "pdf"},
		Scores:    map[string]float64{"finance": 50, "public": 40, "medical": 30, "law": 20, "commerce": 10},
		Aggregate: 150,
	}
	require.NoError(t, store.InsertRecord(ctx, schema.RAG, r))

	records, err := store.FetchRecords(ctx, schema.RAG, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 150.0, records[0].Aggregate)
	assert.Equal(t, "pdf", records[0].Text["parser"])
}

func TestRecordStoreGetStatus(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("a", "Model-A", 90)))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, ":memory:", status.Target)
	assert.Equal(t, uint(3), status.SchemaVersion)
	assert.Equal(t, map[string]int64{"models": 1, "logickor": 0, "rag": 0}, status.Tables)
}

func TestSQLiteFilePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "board.db")

	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("a", "Model-A", 90)))
	require.NoError(t, store.Close())

	reopened, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.FetchRecords(ctx, schema.Models, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Model-A"}, fetchedNames(records))
}

func TestSQLiteCanceledContext(t *testing.T) {
	store := newSQLiteStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FetchRecords(ctx, schema.Models, nil)
	assert.Error(t, err)
}

func TestSQLiteCloseNil(t *testing.T) {
	store := &RecordStoreImpl{}
	assert.NoError(t, store.Close())

	status, err := store.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Connected)
}
