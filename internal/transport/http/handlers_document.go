package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"polisflow/internal/document"
	"polisflow/internal/document/service"
	"polisflow/internal/reporting"
	"polisflow/internal/signature"
	"polisflow/internal/submission"
	"polisflow/internal/transport/http/shared"
	dErrors "polisflow/pkg/domain-errors"
	"polisflow/pkg/requestcontext"
)

// Service is the slice of the lifecycle controller the transport needs.
type Service interface {
	CreateDocument(ctx context.Context, in service.CreateDocumentInput) (*document.Record, error)
	Get(ctx context.Context, documentID string) (*service.View, error)

	CreateSignatureRequest(ctx context.Context, in service.CreateSignatureRequestInput) (*signature.Request, error)
	SignatureCallback(ctx context.Context, requestID string, signedAt time.Time) (*signature.Request, error)
	ResendSignatureRequest(ctx context.Context, requestID string, expectedVersion int64) (*signature.Request, error)
	CancelSignatureRequest(ctx context.Context, requestID string, expectedVersion int64) (*signature.Request, error)

	CreateSubmission(ctx context.Context, in service.CreateSubmissionInput) (*submission.Submission, error)
	MarkProcessing(ctx context.Context, submissionID string) (*submission.Submission, error)
	CarrierCallback(ctx context.Context, in service.ResolveInput) (*submission.Submission, error)
	RetrySubmission(ctx context.Context, submissionID string, expectedVersion int64) (*submission.Submission, error)

	SignatureSummary(ctx context.Context, documentIDs []string) (reporting.SignatureSummary, error)
	SubmissionSummary(ctx context.Context, documentIDs []string) (reporting.SubmissionSummary, error)
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, err := h.service.CreateDocument(ctx, service.CreateDocumentInput{
		Name:         req.Name,
		DocumentType: req.DocumentType,
		ClientID:     req.ClientID,
	})
	if err != nil {
		h.logError(ctx, "failed to create document", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toDocumentResponse(rec, false))
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.logError(ctx, "failed to load document", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toViewResponse(view))
}

func (h *Handler) handleCreateSignatureRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSignatureRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	expiryDays := h.defaultExpiryDays
	if req.ExpiryDays != nil {
		expiryDays = *req.ExpiryDays
	}

	created, err := h.service.CreateSignatureRequest(ctx, service.CreateSignatureRequestInput{
		DocumentID:       chi.URLParam(r, "id"),
		Method:           signature.Method(req.Method),
		RecipientContact: req.RecipientContact,
		ExpiryDays:       expiryDays,
		ExpectedVersion:  req.ExpectedVersion,
	})
	if err != nil {
		h.logError(ctx, "failed to create signature request", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toSignatureRequestResponse(created))
}

func (h *Handler) handleResendSignatureRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resent, err := h.service.ResendSignatureRequest(ctx, chi.URLParam(r, "id"), req.ExpectedVersion)
	if err != nil {
		h.logError(ctx, "failed to resend signature request", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSignatureRequestResponse(resent))
}

func (h *Handler) handleCancelSignatureRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	cancelled, err := h.service.CancelSignatureRequest(ctx, chi.URLParam(r, "id"), req.ExpectedVersion)
	if err != nil {
		h.logError(ctx, "failed to cancel signature request", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSignatureRequestResponse(cancelled))
}

// handleSignatureCallback is the e-signature provider webhook. It is
// idempotent: replaying a delivery returns 200 with the stored request.
func (h *Handler) handleSignatureCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signatureCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	signedAt := requestcontext.Now(ctx)
	if req.SignedAt != nil {
		signedAt = *req.SignedAt
	}

	signed, err := h.service.SignatureCallback(ctx, chi.URLParam(r, "id"), signedAt)
	if err != nil {
		h.logError(ctx, "failed to process signature callback", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSignatureRequestResponse(signed))
}
