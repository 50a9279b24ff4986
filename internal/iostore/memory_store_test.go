package iostore

import (
	"context"
	"sync"
	"testing"

	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("a", "Model-A", 90)))
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("b", "Model-B", 95)))
	require.NoError(t, store.InsertRecord(ctx, schema.Models, modelRecord("c", "Model-C", 90)))

	tests := []struct {
		name  string
		order *schema.SortSpec
		want  []string
	}{
		{"arrival order", nil, []string{"Model-A", "Model-B", "Model-C"}},
		{"rank ascending", &schema.SortSpec{Field: "rank", Direction: schema.Asc}, []string{"Model-B", "Model-A", "Model-C"}},
		{"rank descending", &schema.SortSpec{Field: "rank", Direction: schema.Desc}, []string{"Model-A", "Model-C", "Model-B"}},
		{"name descending", &schema.SortSpec{Field: "model", Direction: schema.Desc}, []string{"Model-C", "Model-B", "Model-A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.FetchRecords(ctx, schema.Models, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fetchedNames(records))
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		err := store.InsertRecord(ctx, schema.Models, modelRecord("a", "Again", 10))
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("fetch returns copies", func(t *testing.T) {
		records, err := store.FetchRecords(ctx, schema.Models, nil)
		require.NoError(t, err)
		records[0].Scores["bbh"] = -1
		records[0].Rank = 7

		again, err := store.FetchRecords(ctx, schema.Models, nil)
		require.NoError(t, err)
		assert.Equal(t, 90.0, again[0].Scores["bbh"])
		assert.Zero(t, again[0].Rank)
	})

	t.Run("status", func(t *testing.T) {
		status, err := store.GetStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, "memory", status.Backend)
		assert.Equal(t, int64(3), status.Tables["models"])
		assert.Equal(t, int64(0), status.Tables["rag"])
	})

	assert.NoError(t, store.Close())
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FetchRecords(ctx, schema.Models, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.InsertRecord(ctx, schema.Models, modelRecord("a", "A", 1)), context.Canceled)
}

func TestMemoryStoreConcurrency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mgr := NewStoreManager(store)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := mgr.GetRecordStore()
			_ = s.InsertRecord(ctx, schema.RAG, schema.BenchmarkRecord{ID: string(rune('a' + n)), Name: "svc"})
			_, _ = s.FetchRecords(ctx, schema.RAG, nil)
		}(i)
	}
	wg.Wait()

	records, err := store.FetchRecords(ctx, schema.RAG, nil)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}
