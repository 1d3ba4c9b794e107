package testutil

import (
	"context"
	"sync"

	"github.com/feebridge/feebridge/internal/domain/record"
)

// InMemoryRecordStore implements record.Repository for testing the webhook
// pipeline without a live record store
type InMemoryRecordStore struct {
	mu      sync.Mutex
	records map[string]*record.FeeRecord

	ExistsErr error
	InsertErr error

	ExistsCalls int
	InsertCalls int
}

func NewInMemoryRecordStore() *InMemoryRecordStore {
	return &InMemoryRecordStore{
		records: make(map[string]*record.FeeRecord),
	}
}

func (s *InMemoryRecordStore) Exists(ctx context.Context, paymentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ExistsCalls++
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	_, ok := s.records[paymentID]
	return ok, nil
}

func (s *InMemoryRecordStore) Insert(ctx context.Context, rec *record.FeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCalls++
	if s.InsertErr != nil {
		return s.InsertErr
	}
	s.records[rec.PaymentID] = rec
	return nil
}

// Get returns the stored record for a payment id, if any
func (s *InMemoryRecordStore) Get(paymentID string) (*record.FeeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[paymentID]
	return rec, ok
}

// Count returns the number of stored records
func (s *InMemoryRecordStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
