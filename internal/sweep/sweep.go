// Package sweep runs the periodic expiry job: it finds documents stuck in
// pending_signature past their request expiry and moves them to expired
// through the lifecycle service. The sweep is stateless; all decisions are
// re-derived from the store on every pass.
package sweep

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"polisflow/internal/document/store"
	"polisflow/internal/platform/metrics"
	dErrors "polisflow/pkg/domain-errors"
)

// expirer is the slice of the lifecycle service the sweep needs.
type expirer interface {
	ExpireSignatureRequest(ctx context.Context, documentID string) (bool, error)
}

// maxConcurrent bounds the per-pass fan-out so a large backlog cannot
// saturate the store.
const maxConcurrent = 8

// Sweeper periodically expires stale signature requests.
type Sweeper struct {
	store    store.Store
	service  expirer
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration
}

func New(st store.Store, service expirer, m *metrics.Metrics, logger *slog.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{store: st, service: service, metrics: m, logger: logger, interval: interval}
}

// Run loops until the context is cancelled, performing one pass per tick.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "expiry sweep failed", "error", err.Error())
			}
		}
	}
}

// Sweep performs a single pass. A version conflict on an individual document
// means a signature raced the sweep and won; the document is skipped, never
// overwritten.
func (s *Sweeper) Sweep(ctx context.Context) error {
	start := time.Now()

	pending, err := s.store.ListPendingSignature(ctx)
	if err != nil {
		return err
	}

	var expired int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	results := make(chan bool, len(pending))
	for _, rec := range pending {
		g.Go(func() error {
			ok, err := s.service.ExpireSignatureRequest(gctx, rec.ID)
			if err != nil {
				if dErrors.Is(err, dErrors.CodeConcurrentModification) {
					return nil
				}
				s.logger.WarnContext(gctx, "could not expire signature request",
					"document_id", rec.ID,
					"error", err.Error(),
				)
				return nil
			}
			results <- ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(results)
	for ok := range results {
		if ok {
			expired++
		}
	}

	s.metrics.ObserveSweep(time.Since(start), int(expired))
	if expired > 0 {
		s.logger.InfoContext(ctx, "expiry sweep pass complete",
			"scanned", len(pending),
			"expired", expired,
		)
	}
	return nil
}
