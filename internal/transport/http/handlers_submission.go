package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"polisflow/internal/document/service"
	"polisflow/internal/submission"
	"polisflow/internal/transport/http/shared"
	dErrors "polisflow/pkg/domain-errors"
)

func (h *Handler) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.service.CreateSubmission(ctx, service.CreateSubmissionInput{
		DocumentID:              chi.URLParam(r, "id"),
		CompanyID:               req.CompanyID,
		Method:                  submission.Method(req.Method),
		IncludeRelatedDocuments: req.IncludeRelatedDocuments,
		ExpectedVersion:         req.ExpectedVersion,
	})
	if err != nil {
		h.logError(ctx, "failed to create submission", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toSubmissionResponse(created))
}

// handleMarkProcessing acknowledges carrier receipt. Idempotent.
func (h *Handler) handleMarkProcessing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sub, err := h.service.MarkProcessing(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.logError(ctx, "failed to mark submission processing", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSubmissionResponse(sub))
}

// handleCarrierCallback is the carrier adjudication webhook. Replaying the
// same outcome returns 200; a conflicting outcome is a 409.
func (h *Handler) handleCarrierCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req carrierCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resolved, err := h.service.CarrierCallback(ctx, service.ResolveInput{
		SubmissionID:    chi.URLParam(r, "id"),
		Outcome:         submission.Outcome(req.Outcome),
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logError(ctx, "failed to process carrier callback", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toSubmissionResponse(resolved))
}

func (h *Handler) handleRetrySubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req versionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	retried, err := h.service.RetrySubmission(ctx, chi.URLParam(r, "id"), req.ExpectedVersion)
	if err != nil {
		h.logError(ctx, "failed to retry submission", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, toSubmissionResponse(retried))
}

func (h *Handler) handleListCarriers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	carriers, err := h.catalog.List(ctx)
	if err != nil {
		h.logError(ctx, "failed to list carriers", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, carriers)
}
