// Package service is the document lifecycle controller: the single mutation
// surface for documents and their signature/submission sub-records. Every
// status change is validated against the transition table, committed through
// an optimistic version check, and followed by a lifecycle event.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"polisflow/internal/carrier"
	"polisflow/internal/delivery"
	"polisflow/internal/document"
	"polisflow/internal/document/store"
	"polisflow/internal/events"
	"polisflow/internal/platform/metrics"
	"polisflow/internal/signature"
	"polisflow/internal/submission"
	dErrors "polisflow/pkg/domain-errors"
	"polisflow/pkg/requestcontext"
)

// casRetries bounds the internal read-modify-write loop used by webhook
// callbacks and the sweep, which carry no caller version.
const casRetries = 3

// Service orchestrates the document lifecycle.
type Service struct {
	store    store.Store
	catalog  carrier.Catalog
	contact  delivery.ContactDelivery
	carriers delivery.CarrierDelivery
	events   *events.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

func New(
	st store.Store,
	catalog carrier.Catalog,
	contact delivery.ContactDelivery,
	carriers delivery.CarrierDelivery,
	publisher *events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    st,
		catalog:  catalog,
		contact:  contact,
		carriers: carriers,
		events:   publisher,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("polisflow/document"),
	}
}

// View is what Get returns: the aggregate plus the derived expiry flag for
// the live signature request.
type View struct {
	Document             *document.Record
	LiveSignatureRequest *signature.Request
	LiveSubmission       *submission.Submission
	SignatureExpired     bool
}

// CreateDocumentInput describes a new draft document.
type CreateDocumentInput struct {
	Name         string
	DocumentType string
	ClientID     string
}

// CreateDocument registers a new document in draft. Exposed for the upstream
// document-generation system.
func (s *Service) CreateDocument(ctx context.Context, in CreateDocumentInput) (*document.Record, error) {
	ctx, span := s.tracer.Start(ctx, "document.Create")
	defer span.End()

	if in.Name == "" {
		return nil, s.fail(span, dErrors.New(dErrors.CodeBadRequest, "document name is required"))
	}
	now := requestcontext.Now(ctx)
	rec := &document.Record{
		ID:           uuid.NewString(),
		Name:         in.Name,
		DocumentType: in.DocumentType,
		ClientID:     in.ClientID,
		Status:       document.StatusDraft,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, s.fail(span, err)
	}
	s.emit(ctx, events.Event{
		DocumentID: rec.ID,
		Type:       events.TypeDocumentCreated,
		From:       string(document.StatusDraft),
		To:         string(document.StatusDraft),
	})
	return rec, nil
}

// Get returns the document with its sub-record history and derived state.
func (s *Service) Get(ctx context.Context, documentID string) (*View, error) {
	rec, err := s.store.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(ctx, rec), nil
}

func (s *Service) viewOf(ctx context.Context, rec *document.Record) *View {
	now := requestcontext.Now(ctx)
	view := &View{
		Document:             rec,
		LiveSignatureRequest: rec.LiveSignatureRequest(),
		LiveSubmission:       rec.LiveSubmission(),
	}
	if view.LiveSignatureRequest != nil {
		view.SignatureExpired = view.LiveSignatureRequest.IsExpired(now)
	}
	return view
}

// checkVersion enforces the caller-supplied optimistic concurrency token on
// user-facing mutations.
func checkVersion(rec *document.Record, expected int64) error {
	if rec.Version != expected {
		return dErrors.Newf(dErrors.CodeConcurrentModification,
			"document %s is at version %d, caller expected %d; re-read and retry",
			rec.ID, rec.Version, expected)
	}
	return nil
}

// invalidTransition reports the current and attempted status so the caller
// can reconcile instead of blindly retrying.
func invalidTransition(rec *document.Record, to document.Status) error {
	return dErrors.Newf(dErrors.CodeInvalidTransition,
		"document %s is %s; transition to %s is not allowed", rec.ID, rec.Status, to)
}

// commit persists the mutated record and records the transition. from == to
// means only a sub-record changed.
func (s *Service) commit(ctx context.Context, rec *document.Record, expectedVersion int64, from document.Status, evt events.Event) error {
	rec.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, rec, expectedVersion); err != nil {
		return err
	}
	if from != rec.Status {
		s.metrics.RecordTransition(string(from), string(rec.Status))
	}
	evt.DocumentID = rec.ID
	evt.From = string(from)
	evt.To = string(rec.Status)
	s.emit(ctx, evt)
	return nil
}

// emit is best-effort: the event stream is advisory and must not fail a
// committed mutation.
func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Emit(ctx, evt); err != nil {
		s.logger.WarnContext(ctx, "failed to emit lifecycle event",
			"request_id", requestcontext.RequestID(ctx),
			"document_id", evt.DocumentID,
			"type", string(evt.Type),
			"error", err.Error(),
		)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
