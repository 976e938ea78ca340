// Package httptransport is the thin HTTP layer over the lifecycle service.
// Handlers decode, delegate, and encode; business rules live in the service.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"polisflow/internal/carrier"
	"polisflow/internal/platform/middleware"
	"polisflow/internal/transport/http/shared"
	"polisflow/pkg/requestcontext"
)

const requestTimeout = 30 * time.Second

// Handler bundles the dependencies shared by all endpoints.
type Handler struct {
	logger            *slog.Logger
	service           Service
	catalog           carrier.Catalog
	defaultExpiryDays int
}

func NewHandler(svc Service, catalog carrier.Catalog, logger *slog.Logger, defaultExpiryDays int) *Handler {
	return &Handler{
		logger:            logger,
		service:           svc,
		catalog:           catalog,
		defaultExpiryDays: defaultExpiryDays,
	}
}

// NewRouter wires the middleware stack and every public endpoint.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Post("/documents", h.handleCreateDocument)
	r.Get("/documents/{id}", h.handleGetDocument)
	r.Post("/documents/{id}/signature-requests", h.handleCreateSignatureRequest)
	r.Post("/documents/{id}/submissions", h.handleCreateSubmission)

	r.Post("/signature-requests/{id}/resend", h.handleResendSignatureRequest)
	r.Post("/signature-requests/{id}/cancel", h.handleCancelSignatureRequest)
	r.Post("/submissions/{id}/processing", h.handleMarkProcessing)
	r.Post("/submissions/{id}/retry", h.handleRetrySubmission)

	// Webhook entry points for the e-signature provider and the carriers.
	r.Post("/callbacks/signature/{id}", h.handleSignatureCallback)
	r.Post("/callbacks/carrier/{id}", h.handleCarrierCallback)

	r.Get("/carriers", h.handleListCarriers)
	r.Post("/reports/signature-summary", h.handleSignatureSummary)
	r.Post("/reports/submission-summary", h.handleSubmissionSummary)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	)
}
