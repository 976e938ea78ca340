package service

import (
	"context"

	"polisflow/internal/reporting"
	"polisflow/pkg/requestcontext"
)

// SignatureSummary aggregates signature requests across the given documents.
// Unknown ids are skipped rather than failing the whole report.
func (s *Service) SignatureSummary(ctx context.Context, documentIDs []string) (reporting.SignatureSummary, error) {
	ctx, span := s.tracer.Start(ctx, "document.SignatureSummary")
	defer span.End()

	docs, err := s.store.List(ctx, documentIDs)
	if err != nil {
		return reporting.SignatureSummary{}, s.fail(span, err)
	}
	return reporting.SignaturesForDocuments(docs, requestcontext.Now(ctx)), nil
}

// SubmissionSummary aggregates the live carrier submission of each given
// document.
func (s *Service) SubmissionSummary(ctx context.Context, documentIDs []string) (reporting.SubmissionSummary, error) {
	ctx, span := s.tracer.Start(ctx, "document.SubmissionSummary")
	defer span.End()

	docs, err := s.store.List(ctx, documentIDs)
	if err != nil {
		return reporting.SubmissionSummary{}, s.fail(span, err)
	}
	return reporting.SubmissionsForDocuments(docs), nil
}
