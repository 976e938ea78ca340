package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polisflow/pkg/requestcontext"
)

func TestPublisherSyncMode(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		DocumentID: "doc-1",
		Type:       TypeSignatureRequestCreated,
		From:       "draft",
		To:         "pending_signature",
	})
	require.NoError(t, err)

	got, err := pub.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, TypeSignatureRequestCreated, got[0].Type)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestPublisherAsyncDrainsOnClose(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), Event{
			DocumentID: "doc-1",
			Type:       TypeSubmissionCreated,
		})
		require.NoError(t, err)
	}

	pub.Close()

	got, err := store.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

// blockingStore parks every Append until release is closed, signalling
// entered once the drain goroutine is inside the first call.
type blockingStore struct {
	*MemoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingStore) Append(ctx context.Context, event Event) error {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.MemoryStore.Append(ctx, event)
}

func TestPublisherDropsWhenBufferFull(t *testing.T) {
	store := &blockingStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	pub := NewPublisher(store, WithAsyncBuffer(1))

	// First event occupies the drain goroutine, second fills the buffer.
	require.NoError(t, pub.Emit(context.Background(), Event{DocumentID: "doc-1", Type: TypeDocumentCreated}))
	<-store.entered
	require.NoError(t, pub.Emit(context.Background(), Event{DocumentID: "doc-1", Type: TypeSignatureRequestCreated}))

	err := pub.Emit(context.Background(), Event{DocumentID: "doc-1", Type: TypeSignatureRequestSigned})
	require.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, int64(1), pub.Dropped())

	close(store.release)
	pub.Close()

	got, err := store.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Len(t, got, 2, "queued events still flush, only the overflow is lost")
}

func TestPublisherCloseIdempotent(t *testing.T) {
	pub := NewPublisher(NewMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()
}

func TestPublisherEmitAfterClose(t *testing.T) {
	pub := NewPublisher(NewMemoryStore(), WithAsyncBuffer(1))
	pub.Close()

	err := pub.Emit(context.Background(), Event{DocumentID: "doc-1", Type: TypeDocumentCreated})
	require.ErrorIs(t, err, ErrClosed)
}

func TestPublisherHonorsRequestTime(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	err := pub.Emit(ctx, Event{DocumentID: "doc-1", Type: TypeDocumentCreated})
	require.NoError(t, err)

	got, err := store.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fixed, got[0].Timestamp)
}
