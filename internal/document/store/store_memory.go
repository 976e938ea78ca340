package store

import (
	"context"
	"sync"

	"polisflow/internal/document"
	dErrors "polisflow/pkg/domain-errors"
)

// MemoryStore is the in-memory Store used in tests and single-node
// development runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*document.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*document.Record)}
}

func (s *MemoryStore) Create(_ context.Context, rec *document.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return dErrors.Newf(dErrors.CodeBadRequest, "document %s already exists", rec.ID)
	}
	s.records[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) FindBySignatureRequest(_ context.Context, requestID string) (*document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.SignatureRequestByID(requestID) != nil {
			return rec.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindBySubmission(_ context.Context, submissionID string) (*document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.SubmissionByID(submissionID) != nil {
			return rec.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, ids []string) ([]*document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*document.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.records[id]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) ListPendingSignature(_ context.Context) ([]*document.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*document.Record
	for _, rec := range s.records {
		if rec.Status == document.StatusPendingSignature {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, rec *document.Record, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.records[rec.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	rec.Version = expectedVersion + 1
	s.records[rec.ID] = rec.Clone()
	return nil
}
