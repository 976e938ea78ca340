package httptransport

import (
	"encoding/json"
	"net/http"

	"polisflow/internal/transport/http/shared"
	dErrors "polisflow/pkg/domain-errors"
)

func (h *Handler) handleSignatureSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	summary, err := h.service.SignatureSummary(ctx, req.DocumentIDs)
	if err != nil {
		h.logError(ctx, "failed to build signature summary", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleSubmissionSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	summary, err := h.service.SubmissionSummary(ctx, req.DocumentIDs)
	if err != nil {
		h.logError(ctx, "failed to build submission summary", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, summary)
}
