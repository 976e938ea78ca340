package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"polisflow/internal/delivery"
	"polisflow/internal/document"
	"polisflow/internal/events"
	"polisflow/internal/signature"
	dErrors "polisflow/pkg/domain-errors"
	"polisflow/pkg/requestcontext"
)

// CreateSignatureRequestInput carries everything needed to open a signature
// request. ExpiryDays is ignored for the link method.
type CreateSignatureRequestInput struct {
	DocumentID       string
	Method           signature.Method
	RecipientContact string
	ExpiryDays       int
	ExpectedVersion  int64
}

// CreateSignatureRequest opens a new signature request and moves the document
// to pending_signature. The outbound dispatch must succeed before anything is
// persisted; a dispatch failure aborts the operation atomically.
func (s *Service) CreateSignatureRequest(ctx context.Context, in CreateSignatureRequestInput) (*signature.Request, error) {
	ctx, span := s.tracer.Start(ctx, "document.CreateSignatureRequest")
	defer span.End()

	if err := signature.ValidateMethod(in.Method, in.RecipientContact); err != nil {
		return nil, s.fail(span, err)
	}
	if in.ExpiryDays < 0 {
		return nil, s.fail(span, dErrors.New(dErrors.CodeBadRequest, "expiryDays must not be negative"))
	}

	rec, err := s.store.Get(ctx, in.DocumentID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := checkVersion(rec, in.ExpectedVersion); err != nil {
		return nil, s.fail(span, err)
	}

	// A cancelled request leaves the document in pending_signature with no
	// live request; re-issuing from there is legal and is not a transition.
	if rec.Status == document.StatusPendingSignature {
		if rec.LiveSignatureRequest() != nil {
			return nil, s.fail(span, invalidTransition(rec, document.StatusPendingSignature))
		}
	} else if !document.CanTransition(rec.Status, document.StatusPendingSignature) {
		return nil, s.fail(span, invalidTransition(rec, document.StatusPendingSignature))
	}

	now := requestcontext.Now(ctx)
	req := signature.Request{
		ID:               uuid.NewString(),
		DocumentID:       rec.ID,
		Seq:              len(rec.SignatureRequests) + 1,
		Method:           in.Method,
		RecipientContact: in.RecipientContact,
		CreatedAt:        now,
		SentAt:           now,
		Status:           signature.StatusPending,
	}
	if in.Method != signature.MethodLink {
		expiresAt := now.Add(time.Duration(in.ExpiryDays) * 24 * time.Hour)
		req.ExpiresAt = &expiresAt
	}

	if err := s.dispatchSignature(ctx, rec, &req); err != nil {
		return nil, s.fail(span, err)
	}

	from := rec.Status
	rec.SignatureRequests = append(rec.SignatureRequests, req)
	rec.Status = document.StatusPendingSignature
	if err := s.commit(ctx, rec, in.ExpectedVersion, from, events.Event{
		Type: events.TypeSignatureRequestCreated,
		Meta: map[string]string{"request_id": req.ID, "method": string(req.Method)},
	}); err != nil {
		return nil, s.fail(span, err)
	}
	return rec.SignatureRequestByID(req.ID), nil
}

// SignatureCallback records a client signature. Idempotent webhook entry
// point: a duplicate callback for an already signed request returns the
// existing request without error. A signature always wins over derived
// expiry, so no expiry check happens here.
func (s *Service) SignatureCallback(ctx context.Context, requestID string, signedAt time.Time) (*signature.Request, error) {
	ctx, span := s.tracer.Start(ctx, "document.SignatureCallback")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		rec, err := s.store.FindBySignatureRequest(ctx, requestID)
		if err != nil {
			return nil, s.fail(span, err)
		}
		req := rec.SignatureRequestByID(requestID)

		switch req.Status {
		case signature.StatusSigned:
			s.metrics.RecordDuplicateCallback()
			s.logger.InfoContext(ctx, "duplicate signature callback ignored",
				"request_id", requestcontext.RequestID(ctx),
				"signature_request_id", requestID,
			)
			return req, nil
		case signature.StatusExpired, signature.StatusCancelled:
			return nil, s.fail(span, dErrors.Newf(dErrors.CodeAlreadyResolved,
				"signature request %s is %s and cannot be signed", requestID, req.Status))
		}

		if !document.CanTransition(rec.Status, document.StatusSigned) {
			return nil, s.fail(span, invalidTransition(rec, document.StatusSigned))
		}

		signedCopy := signedAt
		req.SignedAt = &signedCopy
		req.Status = signature.StatusSigned

		from := rec.Status
		rec.Status = document.StatusSigned
		err = s.commit(ctx, rec, rec.Version, from, events.Event{
			Type: events.TypeSignatureRequestSigned,
			Meta: map[string]string{"request_id": requestID},
		})
		if err == nil {
			return req, nil
		}
		if !dErrors.Is(err, dErrors.CodeConcurrentModification) {
			return nil, s.fail(span, err)
		}
		lastErr = err
	}
	return nil, s.fail(span, lastErr)
}

// ResendSignatureRequest sends a reminder for a pending request, or issues a
// fresh request (with a fresh expiry window) when the previous one expired.
// Link requests are a no-op: the caller re-copies the stored link.
func (s *Service) ResendSignatureRequest(ctx context.Context, requestID string, expectedVersion int64) (*signature.Request, error) {
	ctx, span := s.tracer.Start(ctx, "document.ResendSignatureRequest")
	defer span.End()

	rec, err := s.store.FindBySignatureRequest(ctx, requestID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := checkVersion(rec, expectedVersion); err != nil {
		return nil, s.fail(span, err)
	}
	req := rec.SignatureRequestByID(requestID)

	if req.Method == signature.MethodLink {
		return req, nil
	}
	if !req.CanResend() {
		return nil, s.fail(span, dErrors.Newf(dErrors.CodeAlreadyResolved,
			"signature request %s is %s and cannot be resent", requestID, req.Status))
	}

	now := requestcontext.Now(ctx)

	if req.Status == signature.StatusPending {
		// Reminder on the live request; document status is unchanged.
		if err := s.dispatchSignature(ctx, rec, req); err != nil {
			return nil, s.fail(span, err)
		}
		req.RemindersSent++
		req.SentAt = now
		if err := s.commit(ctx, rec, expectedVersion, rec.Status, events.Event{
			Type: events.TypeSignatureReminderSent,
			Meta: map[string]string{"request_id": requestID},
		}); err != nil {
			return nil, s.fail(span, err)
		}
		return req, nil
	}

	// Expired: issue a brand-new request with the same method, contact, and
	// expiry window, and bring the document back to pending_signature.
	fresh := signature.Request{
		ID:               uuid.NewString(),
		DocumentID:       rec.ID,
		Seq:              len(rec.SignatureRequests) + 1,
		Method:           req.Method,
		RecipientContact: req.RecipientContact,
		CreatedAt:        now,
		SentAt:           now,
		Status:           signature.StatusPending,
	}
	if req.ExpiresAt != nil {
		// SentAt moves on every reminder; CreatedAt anchors the original
		// window so the replacement gets the full duration again.
		window := req.ExpiresAt.Sub(req.CreatedAt)
		expiresAt := now.Add(window)
		fresh.ExpiresAt = &expiresAt
	}

	if !document.CanTransition(rec.Status, document.StatusPendingSignature) {
		return nil, s.fail(span, invalidTransition(rec, document.StatusPendingSignature))
	}
	if err := s.dispatchSignature(ctx, rec, &fresh); err != nil {
		return nil, s.fail(span, err)
	}

	from := rec.Status
	rec.SignatureRequests = append(rec.SignatureRequests, fresh)
	rec.Status = document.StatusPendingSignature
	if err := s.commit(ctx, rec, expectedVersion, from, events.Event{
		Type: events.TypeSignatureRequestCreated,
		Meta: map[string]string{"request_id": fresh.ID, "supersedes": requestID},
	}); err != nil {
		return nil, s.fail(span, err)
	}
	return rec.SignatureRequestByID(fresh.ID), nil
}

// CancelSignatureRequest invalidates a pending request. The document status
// is left untouched; cancellation does not retract an already delivered
// email or SMS.
func (s *Service) CancelSignatureRequest(ctx context.Context, requestID string, expectedVersion int64) (*signature.Request, error) {
	ctx, span := s.tracer.Start(ctx, "document.CancelSignatureRequest")
	defer span.End()

	rec, err := s.store.FindBySignatureRequest(ctx, requestID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := checkVersion(rec, expectedVersion); err != nil {
		return nil, s.fail(span, err)
	}
	req := rec.SignatureRequestByID(requestID)
	if req.Status != signature.StatusPending {
		return nil, s.fail(span, dErrors.Newf(dErrors.CodeAlreadyResolved,
			"signature request %s is %s and cannot be cancelled", requestID, req.Status))
	}

	req.Status = signature.StatusCancelled
	if err := s.commit(ctx, rec, expectedVersion, rec.Status, events.Event{
		Type: events.TypeSignatureRequestCancelled,
		Meta: map[string]string{"request_id": requestID},
	}); err != nil {
		return nil, s.fail(span, err)
	}
	return req, nil
}

// ExpireSignatureRequest is the sweep entry point: it applies the
// pending_signature -> expired transition when the live request's expiry has
// passed. A version conflict is returned as-is so the sweep can skip the
// document; a concurrent signature must never be overwritten.
func (s *Service) ExpireSignatureRequest(ctx context.Context, documentID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "document.ExpireSignatureRequest")
	defer span.End()

	rec, err := s.store.Get(ctx, documentID)
	if err != nil {
		return false, s.fail(span, err)
	}
	req := rec.LiveSignatureRequest()
	if req == nil || !req.IsExpired(requestcontext.Now(ctx)) {
		return false, nil
	}
	if !document.CanTransition(rec.Status, document.StatusExpired) {
		return false, nil
	}

	req.Status = signature.StatusExpired
	from := rec.Status
	rec.Status = document.StatusExpired
	if err := s.commit(ctx, rec, rec.Version, from, events.Event{
		Type: events.TypeSignatureRequestExpired,
		Meta: map[string]string{"request_id": req.ID},
	}); err != nil {
		return false, s.fail(span, err)
	}
	return true, nil
}

func (s *Service) dispatchSignature(ctx context.Context, rec *document.Record, req *signature.Request) error {
	d := delivery.SignatureDispatch{
		DocumentID:   rec.ID,
		DocumentName: rec.Name,
		Recipient:    req.RecipientContact,
	}
	var err error
	switch req.Method {
	case signature.MethodEmail:
		err = s.contact.SendEmail(ctx, d)
	case signature.MethodSMS:
		err = s.contact.SendSMS(ctx, d)
	case signature.MethodLink:
		req.Link, err = s.contact.GenerateSignatureLink(ctx, rec.ID)
	}
	if err != nil {
		s.metrics.RecordDispatchFailure()
		return dErrors.Wrap(dErrors.CodeDeliveryDispatchFailed,
			"dispatch signature request", err)
	}
	return nil
}
