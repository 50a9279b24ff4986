package iostore

import (
	"context"

	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RecordStore)
	return store
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// FetchRecords implements the RecordStore interface.
func (m *MockRecordStore) FetchRecords(ctx context.Context, variant schema.Variant, order *schema.SortSpec) ([]schema.BenchmarkRecord, error) {
	args := m.Called(ctx, variant, order)
	records, _ := args.Get(0).([]schema.BenchmarkRecord)
	return records, args.Error(1)
}

// InsertRecord implements the RecordStore interface.
func (m *MockRecordStore) InsertRecord(ctx context.Context, variant schema.Variant, record schema.BenchmarkRecord) error {
	args := m.Called(ctx, variant, record)
	return args.Error(0)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
