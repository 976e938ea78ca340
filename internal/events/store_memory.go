package events

import (
	"context"
	"sync"
)

// MemoryStore keeps events in memory for tests and development runs.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string][]Event)}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.DocumentID] = append(s.events[event.DocumentID], event)
	return nil
}

func (s *MemoryStore) ListByDocument(_ context.Context, documentID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[documentID]...), nil
}
