package service

import (
	"context"

	"github.com/google/uuid"

	"polisflow/internal/document"
	"polisflow/internal/events"
	"polisflow/internal/submission"
	dErrors "polisflow/pkg/domain-errors"
	"polisflow/pkg/requestcontext"
)

// CreateSubmissionInput carries everything needed to submit a document to a
// carrier.
type CreateSubmissionInput struct {
	DocumentID              string
	CompanyID               string
	Method                  submission.Method
	IncludeRelatedDocuments bool
	ExpectedVersion         int64
}

// CreateSubmission delivers the document to a carrier and moves it to sent.
// The carrier must exist in the catalog and the dispatch must succeed before
// anything is persisted.
func (s *Service) CreateSubmission(ctx context.Context, in CreateSubmissionInput) (*submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "document.CreateSubmission")
	defer span.End()

	if !submission.ValidMethod(in.Method) {
		return nil, s.fail(span, dErrors.Newf(dErrors.CodeInvalidMethodParameters,
			"unknown submission method %q", in.Method))
	}
	if _, err := s.catalog.Lookup(ctx, in.CompanyID); err != nil {
		return nil, s.fail(span, err)
	}

	rec, err := s.store.Get(ctx, in.DocumentID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := checkVersion(rec, in.ExpectedVersion); err != nil {
		return nil, s.fail(span, err)
	}
	if !document.CanTransition(rec.Status, document.StatusSent) {
		return nil, s.fail(span, invalidTransition(rec, document.StatusSent))
	}

	now := requestcontext.Now(ctx)
	sub := submission.Submission{
		ID:                      uuid.NewString(),
		DocumentID:              rec.ID,
		Seq:                     len(rec.CarrierSubmissions) + 1,
		CompanyID:               in.CompanyID,
		Method:                  in.Method,
		IncludeRelatedDocuments: in.IncludeRelatedDocuments,
		CreatedAt:               now,
		SubmittedAt:             now,
		Status:                  submission.StatusSent,
	}
	if err := s.dispatchSubmission(ctx, sub); err != nil {
		return nil, s.fail(span, err)
	}

	from := rec.Status
	rec.CarrierSubmissions = append(rec.CarrierSubmissions, sub)
	rec.Status = document.StatusSent
	if err := s.commit(ctx, rec, in.ExpectedVersion, from, events.Event{
		Type: events.TypeSubmissionCreated,
		Meta: map[string]string{"submission_id": sub.ID, "company_id": sub.CompanyID},
	}); err != nil {
		return nil, s.fail(span, err)
	}
	return rec.SubmissionByID(sub.ID), nil
}

// MarkProcessing records that the carrier acknowledged the submission.
// Idempotent: marking an already processing submission is a no-op.
func (s *Service) MarkProcessing(ctx context.Context, submissionID string) (*submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "document.MarkProcessing")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		rec, err := s.store.FindBySubmission(ctx, submissionID)
		if err != nil {
			return nil, s.fail(span, err)
		}
		sub := rec.SubmissionByID(submissionID)

		switch sub.Status {
		case submission.StatusProcessing:
			s.metrics.RecordDuplicateCallback()
			return sub, nil
		case submission.StatusApproved, submission.StatusRejected:
			return nil, s.fail(span, dErrors.Newf(dErrors.CodeAlreadyResolved,
				"submission %s is already %s", submissionID, sub.Status))
		}

		if !document.CanTransition(rec.Status, document.StatusProcessing) {
			return nil, s.fail(span, invalidTransition(rec, document.StatusProcessing))
		}

		sub.Status = submission.StatusProcessing
		from := rec.Status
		rec.Status = document.StatusProcessing
		err = s.commit(ctx, rec, rec.Version, from, events.Event{
			Type: events.TypeSubmissionProcessing,
			Meta: map[string]string{"submission_id": submissionID},
		})
		if err == nil {
			return sub, nil
		}
		if !dErrors.Is(err, dErrors.CodeConcurrentModification) {
			return nil, s.fail(span, err)
		}
		lastErr = err
	}
	return nil, s.fail(span, lastErr)
}

// ResolveInput is the terminal outcome reported by a carrier.
type ResolveInput struct {
	SubmissionID    string
	Outcome         submission.Outcome
	ReferenceNumber string
	Notes           string
}

// CarrierCallback resolves a submission to approved or rejected. Idempotent
// webhook entry point: a duplicate callback with the same outcome returns
// the existing submission without error.
func (s *Service) CarrierCallback(ctx context.Context, in ResolveInput) (*submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "document.CarrierCallback")
	defer span.End()

	if in.Outcome != submission.OutcomeApproved && in.Outcome != submission.OutcomeRejected {
		return nil, s.fail(span, dErrors.Newf(dErrors.CodeBadRequest,
			"unknown outcome %q", in.Outcome))
	}

	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		rec, err := s.store.FindBySubmission(ctx, in.SubmissionID)
		if err != nil {
			return nil, s.fail(span, err)
		}
		sub := rec.SubmissionByID(in.SubmissionID)

		if sub.IsResolved() {
			if string(sub.Status) == string(in.Outcome) {
				s.metrics.RecordDuplicateCallback()
				s.logger.InfoContext(ctx, "duplicate carrier callback ignored",
					"request_id", requestcontext.RequestID(ctx),
					"submission_id", in.SubmissionID,
					"outcome", string(in.Outcome),
				)
				return sub, nil
			}
			return nil, s.fail(span, dErrors.Newf(dErrors.CodeAlreadyResolved,
				"submission %s is already %s; cannot resolve to %s",
				in.SubmissionID, sub.Status, in.Outcome))
		}

		target := document.Status(in.Outcome)
		from := rec.Status

		// Resolving straight from sent passes through processing; both hops
		// are in the table.
		if rec.Status == document.StatusSent {
			if !document.CanTransition(rec.Status, document.StatusProcessing) {
				return nil, s.fail(span, invalidTransition(rec, document.StatusProcessing))
			}
			rec.Status = document.StatusProcessing
		}
		if !document.CanTransition(rec.Status, target) {
			rec.Status = from
			return nil, s.fail(span, invalidTransition(rec, target))
		}

		now := requestcontext.Now(ctx)
		sub.ProcessedAt = &now
		sub.Status = submission.Status(in.Outcome)
		sub.ReferenceNumber = in.ReferenceNumber
		sub.Notes = in.Notes
		rec.Status = target
		err = s.commit(ctx, rec, rec.Version, from, events.Event{
			Type: events.TypeSubmissionResolved,
			Meta: map[string]string{
				"submission_id": in.SubmissionID,
				"outcome":       string(in.Outcome),
			},
		})
		if err == nil {
			return sub, nil
		}
		if !dErrors.Is(err, dErrors.CodeConcurrentModification) {
			return nil, s.fail(span, err)
		}
		lastErr = err
	}
	return nil, s.fail(span, lastErr)
}

// RetrySubmission resubmits a rejected document to the same carrier with the
// same method. The rejected submission stays in history unmodified.
func (s *Service) RetrySubmission(ctx context.Context, submissionID string, expectedVersion int64) (*submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "document.RetrySubmission")
	defer span.End()

	rec, err := s.store.FindBySubmission(ctx, submissionID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := checkVersion(rec, expectedVersion); err != nil {
		return nil, s.fail(span, err)
	}
	prev := rec.SubmissionByID(submissionID)
	if prev.Status != submission.StatusRejected {
		return nil, s.fail(span, dErrors.Newf(dErrors.CodeInvalidTransition,
			"submission %s is %s; only rejected submissions can be retried",
			submissionID, prev.Status))
	}
	if !document.CanTransition(rec.Status, document.StatusSent) {
		return nil, s.fail(span, invalidTransition(rec, document.StatusSent))
	}

	now := requestcontext.Now(ctx)
	sub := submission.Submission{
		ID:                      uuid.NewString(),
		DocumentID:              rec.ID,
		Seq:                     len(rec.CarrierSubmissions) + 1,
		CompanyID:               prev.CompanyID,
		Method:                  prev.Method,
		IncludeRelatedDocuments: prev.IncludeRelatedDocuments,
		CreatedAt:               now,
		SubmittedAt:             now,
		Status:                  submission.StatusSent,
	}
	if err := s.dispatchSubmission(ctx, sub); err != nil {
		return nil, s.fail(span, err)
	}

	from := rec.Status
	rec.CarrierSubmissions = append(rec.CarrierSubmissions, sub)
	rec.Status = document.StatusSent
	if err := s.commit(ctx, rec, expectedVersion, from, events.Event{
		Type: events.TypeSubmissionCreated,
		Meta: map[string]string{"submission_id": sub.ID, "retries": submissionID},
	}); err != nil {
		return nil, s.fail(span, err)
	}
	return rec.SubmissionByID(sub.ID), nil
}

func (s *Service) dispatchSubmission(ctx context.Context, sub submission.Submission) error {
	var err error
	switch sub.Method {
	case submission.MethodEmail:
		err = s.carriers.SubmitViaEmail(ctx, sub)
	case submission.MethodPortal:
		err = s.carriers.SubmitViaPortal(ctx, sub)
	case submission.MethodAPI:
		err = s.carriers.SubmitViaAPI(ctx, sub)
	}
	if err != nil {
		s.metrics.RecordDispatchFailure()
		return dErrors.Wrap(dErrors.CodeDeliveryDispatchFailed,
			"dispatch carrier submission", err)
	}
	return nil
}
