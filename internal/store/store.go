// Package store holds the session's classified records in memory.
package store

import (
	"sync"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

// Row is a record paired with its 1-based display position. The position is
// derived on read and never stored or exported.
type Row struct {
	No int `json:"no"`
	domain.ClassifiedRecord
}

// RecordStore is an ordered, append-only sequence of classified records.
// There is no remove, update or clear; records live until the process exits.
type RecordStore struct {
	mu      sync.RWMutex
	records []domain.ClassifiedRecord
}

// New creates an empty RecordStore.
func New() *RecordStore {
	return &RecordStore{}
}

// Append adds rec to the end of the sequence and returns the new length.
func (s *RecordStore) Append(rec domain.ClassifiedRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return len(s.records)
}

// Snapshot returns a copy of every record in insertion order.
func (s *RecordStore) Snapshot() []domain.ClassifiedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ClassifiedRecord, len(s.records))
	copy(out, s.records)
	return out
}

// IsEmpty reports whether no record has been appended yet.
func (s *RecordStore) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Rows returns the records numbered for display.
func (s *RecordStore) Rows() []Row {
	snap := s.Snapshot()
	rows := make([]Row, len(snap))
	for i, rec := range snap {
		rows[i] = Row{No: i + 1, ClassifiedRecord: rec}
	}
	return rows
}
