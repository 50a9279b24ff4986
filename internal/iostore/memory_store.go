package iostore

import (
	"context"
	"sync"

	"github.com/huangsam/benchboard/core/algo"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"golang.org/x/text/language"
)

// MemoryStore keeps records in process memory. It backs the memory backend and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[schema.VariantName][]schema.BenchmarkRecord
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: map[schema.VariantName][]schema.BenchmarkRecord{}}
}

// FetchRecords returns copies of every record of the variant in arrival order,
// or ordered by the given field the way the SQL store orders them.
func (s *MemoryStore) FetchRecords(ctx context.Context, variant schema.Variant, order *schema.SortSpec) ([]schema.BenchmarkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rows := s.tables[variant.Name]
	out := make([]schema.BenchmarkRecord, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	s.mu.RUnlock()

	if order == nil {
		return out, nil
	}
	spec := *order
	if f, ok := variant.Field(spec.Field); ok && f.Kind == schema.RankKind {
		// Stored rows carry no rank; rank 1 is the highest aggregate.
		spec = schema.SortSpec{Field: variant.AggregateField().Key, Direction: spec.Direction.Reverse()}
	}
	return algo.NewPipeline(variant, language.Und).Sort(out, spec), nil
}

// InsertRecord appends a copy of the record. IDs must be unique per variant.
func (s *MemoryStore) InsertRecord(ctx context.Context, variant schema.Variant, record schema.BenchmarkRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.tables[variant.Name] {
		if r.ID == record.ID {
			return errDuplicateID(record.ID)
		}
	}
	record = record.Clone()
	record.Rank = 0
	s.tables[variant.Name] = append(s.tables[variant.Name], record)
	return nil
}

// GetStatus returns the row count of every variant.
func (s *MemoryStore) GetStatus(_ context.Context) (schema.StoreStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := schema.StoreStatus{
		Backend:   string(schema.MemoryBackend),
		Connected: true,
		Tables:    make(map[string]int64, len(schema.AllVariants)),
	}
	for _, v := range schema.AllVariants {
		status.Tables[v.Table] = int64(len(s.tables[v.Name]))
	}
	return status, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
