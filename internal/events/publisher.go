package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"polisflow/pkg/requestcontext"
)

// ErrBufferFull reports an event dropped because the async buffer had no
// room. Events are advisory, so callers log and move on.
var ErrBufferFull = errors.New("events: async buffer full, event dropped")

// ErrClosed reports an emit after Close.
var ErrClosed = errors.New("events: publisher closed")

// Publisher emits lifecycle events to a Store. Synchronous by default; with
// WithAsyncBuffer the emit returns immediately and a background goroutine
// drains the buffer. Close flushes whatever is still queued.
type Publisher struct {
	store Store

	inbox   chan Event
	dropped atomic.Int64
	closing atomic.Bool
	wg      sync.WaitGroup
	closed  sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to buffered asynchronous emission.
// Emit never blocks; an event that finds the buffer full is dropped with
// ErrBufferFull.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records one event. Timestamp and ID are filled in when absent so call
// sites stay terse.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if p.inbox != nil {
		if p.closing.Load() {
			return ErrClosed
		}
		// Never block the caller: a mutation has already committed by the
		// time it is announced here.
		select {
		case p.inbox <- event:
			return nil
		default:
			p.dropped.Add(1)
			return ErrBufferFull
		}
	}
	return p.store.Append(ctx, event)
}

// Dropped reports how many events were discarded because the async buffer
// was full.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// ListByDocument reads back the stream for one document.
func (p *Publisher) ListByDocument(ctx context.Context, documentID string) ([]Event, error) {
	return p.store.ListByDocument(ctx, documentID)
}

// Close drains the async buffer, if any, and blocks until every queued event
// is persisted. All emitters must have stopped before Close; a later Emit
// returns ErrClosed.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox != nil {
			p.closing.Store(true)
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		// Events are advisory; a failed append must not wedge the drain loop.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = p.store.Append(ctx, event)
		cancel()
	}
}
