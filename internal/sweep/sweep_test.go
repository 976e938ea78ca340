package sweep

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polisflow/internal/document"
	"polisflow/internal/document/store"
	"polisflow/internal/signature"
	dErrors "polisflow/pkg/domain-errors"
)

type fakeExpirer struct {
	mu     sync.Mutex
	calls  []string
	expire map[string]bool
	errs   map[string]error
}

func (f *fakeExpirer) ExpireSignatureRequest(_ context.Context, documentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, documentID)
	if err := f.errs[documentID]; err != nil {
		return false, err
	}
	return f.expire[documentID], nil
}

func (f *fakeExpirer) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func seedPending(t *testing.T, st *store.MemoryStore, id string, expiresAt time.Time) {
	t.Helper()
	rec := &document.Record{
		ID:      id,
		Name:    "form " + id,
		Status:  document.StatusPendingSignature,
		Version: 2,
		SignatureRequests: []signature.Request{{
			ID:         "sig-" + id,
			DocumentID: id,
			Seq:        1,
			Method:     signature.MethodEmail,
			ExpiresAt:  &expiresAt,
			Status:     signature.StatusPending,
		}},
	}
	require.NoError(t, st.Create(context.Background(), rec))
}

func TestSweepVisitsEveryPendingDocument(t *testing.T) {
	st := store.NewMemoryStore()
	past := time.Now().Add(-time.Hour)
	seedPending(t, st, "d1", past)
	seedPending(t, st, "d2", past)
	require.NoError(t, st.Create(context.Background(), &document.Record{
		ID: "d3", Name: "already signed", Status: document.StatusSigned, Version: 3,
	}))

	exp := &fakeExpirer{expire: map[string]bool{"d1": true, "d2": true}}
	s := New(st, exp, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)

	require.NoError(t, s.Sweep(context.Background()))
	assert.ElementsMatch(t, []string{"d1", "d2"}, exp.called(), "only pending_signature documents are swept")
}

func TestSweepSkipsVersionConflicts(t *testing.T) {
	st := store.NewMemoryStore()
	past := time.Now().Add(-time.Hour)
	seedPending(t, st, "d1", past)
	seedPending(t, st, "d2", past)

	// d1 was signed between the list and the expiry attempt; the conflict is
	// swallowed and the pass still succeeds.
	exp := &fakeExpirer{
		expire: map[string]bool{"d2": true},
		errs:   map[string]error{"d1": store.ErrVersionConflict},
	}
	require.True(t, dErrors.Is(store.ErrVersionConflict, dErrors.CodeConcurrentModification))

	s := New(st, exp, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)
	require.NoError(t, s.Sweep(context.Background()))
	assert.ElementsMatch(t, []string{"d1", "d2"}, exp.called())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	st := store.NewMemoryStore()
	exp := &fakeExpirer{}
	s := New(st, exp, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	err := s.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
