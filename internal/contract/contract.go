// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/benchboard/schema"
)

// StoreManager defines the interface for managing record stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}

// RecordStore defines the interface for leaderboard record storage.
// This allows mocking the store for testing.
type RecordStore interface {
	// FetchRecords returns every record of the variant. A nil order keeps arrival order;
	// otherwise the store orders rows by the given field.
	FetchRecords(ctx context.Context, variant schema.Variant, order *schema.SortSpec) ([]schema.BenchmarkRecord, error)

	// InsertRecord appends one validated record to the variant table.
	InsertRecord(ctx context.Context, variant schema.Variant, record schema.BenchmarkRecord) error

	// GetStatus returns row counts and the schema version of the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
