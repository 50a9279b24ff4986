// Package iostore is for storing and loading leaderboard records.
package iostore

import (
	"sync"

	"github.com/huangsam/benchboard/internal/contract"
)

// RecordStoreManager holds the record store used by the running process.
type RecordStoreManager struct {
	sync.RWMutex
	records contract.RecordStore
}

var _ contract.StoreManager = &RecordStoreManager{} // Compile-time check

// NewStoreManager returns a manager over an already opened store.
func NewStoreManager(store contract.RecordStore) *RecordStoreManager {
	return &RecordStoreManager{records: store}
}

// GetRecordStore returns the record store, or nil when none is configured.
func (m *RecordStoreManager) GetRecordStore() contract.RecordStore {
	m.RLock()
	defer m.RUnlock()
	return m.records
}
