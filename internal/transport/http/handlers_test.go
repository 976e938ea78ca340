package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"polisflow/internal/carrier"
	"polisflow/internal/delivery/mocks"
	"polisflow/internal/document/service"
	"polisflow/internal/document/store"
	"polisflow/internal/events"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	contact := mocks.NewMockContactDelivery(ctrl)
	contact.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	contact.EXPECT().SendSMS(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	contact.EXPECT().GenerateSignatureLink(gomock.Any(), gomock.Any()).Return("https://sign.example/d/x", nil).AnyTimes()
	carriers := mocks.NewMockCarrierDelivery(ctrl)
	carriers.EXPECT().SubmitViaEmail(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	carriers.EXPECT().SubmitViaPortal(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	carriers.EXPECT().SubmitViaAPI(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	catalog := carrier.NewMemoryCatalog([]carrier.Carrier{
		{ID: "migdal", Name: "Migdal", SubmissionMethods: []string{"api", "email"}},
		{ID: "harel", Name: "Harel", SubmissionMethods: []string{"portal"}},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewMemoryStore(), catalog, contact, carriers,
		events.NewPublisher(events.NewMemoryStore()), nil, logger)

	return NewRouter(NewHandler(svc, catalog, logger, 7))
}

func do(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func TestDocumentWorkflowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/documents", map[string]string{
		"name": "pension transfer form", "documentType": "transfer_request", "clientId": "client-7",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	doc := decode[documentResponse](t, rec)
	require.Equal(t, "draft", doc.Status)
	require.Equal(t, int64(1), doc.Version)

	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/signature-requests", map[string]any{
		"method": "email", "recipientContact": "client@example.com", "expiryDays": 7, "expectedVersion": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sig := decode[signatureRequestResponse](t, rec)
	assert.Equal(t, "pending_signature", sig.Status)
	require.NotNil(t, sig.ExpiresAt)

	rec = do(t, router, http.MethodPost, "/callbacks/signature/"+sig.ID, map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "signed", decode[signatureRequestResponse](t, rec).Status)

	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/submissions", map[string]any{
		"companyId": "migdal", "method": "api", "expectedVersion": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[submissionResponse](t, rec)
	assert.Equal(t, "sent", sub.Status)

	rec = do(t, router, http.MethodPost, "/callbacks/carrier/"+sub.ID, map[string]any{
		"outcome": "rejected", "notes": "missing signature page",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "rejected", decode[submissionResponse](t, rec).Status)

	rec = do(t, router, http.MethodPost, "/submissions/"+sub.ID+"/retry", map[string]any{
		"expectedVersion": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	retried := decode[submissionResponse](t, rec)
	assert.Equal(t, "sent", retried.Status)
	assert.Equal(t, "migdal", retried.CompanyID)

	rec = do(t, router, http.MethodGet, "/documents/"+doc.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[documentResponse](t, rec)
	assert.Equal(t, "sent", full.Status)
	assert.Len(t, full.SignatureRequests, 1)
	assert.Len(t, full.CarrierSubmissions, 2)

	rec = do(t, router, http.MethodPost, "/reports/submission-summary", map[string]any{
		"documentIds": []string{doc.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[struct {
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	}](t, rec)
	assert.Equal(t, 1, summary.Pending, "the retried submission supersedes the rejection")
	assert.Zero(t, summary.Approved)
	assert.Zero(t, summary.Rejected)
}

func TestErrorEnvelopes(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/documents/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "not_found", envelope.Error)

	doc := decode[documentResponse](t, do(t, router, http.MethodPost, "/documents", map[string]string{"name": "f"}))

	// Draft documents cannot be submitted.
	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/submissions", map[string]any{
		"companyId": "migdal", "method": "api", "expectedVersion": 1,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "invalid_transition", envelope.Error)

	// Stale version token.
	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/signature-requests", map[string]any{
		"method": "email", "recipientContact": "a@b.com", "expiryDays": 7, "expectedVersion": 42,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "concurrent_modification", envelope.Error)

	// Bad contact for the chosen method.
	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/signature-requests", map[string]any{
		"method": "sms", "recipientContact": "not-a-phone", "expiryDays": 7, "expectedVersion": 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "invalid_method_parameters", envelope.Error)

	// Unknown carrier id.
	rec = do(t, router, http.MethodPost, "/documents/"+doc.ID+"/submissions", map[string]any{
		"companyId": "acme", "method": "api", "expectedVersion": 1,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "unknown_carrier", envelope.Error)

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/documents", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	require.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestListCarriers(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/carriers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	carriers := decode[[]carrier.Carrier](t, rec)
	require.Len(t, carriers, 2)
	assert.Equal(t, "harel", carriers[0].ID, "catalog list is sorted by id")
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
