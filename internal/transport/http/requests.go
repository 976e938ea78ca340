package httptransport

import "time"

type createDocumentRequest struct {
	Name         string `json:"name"`
	DocumentType string `json:"documentType"`
	ClientID     string `json:"clientId"`
}

// createSignatureRequestRequest opens a signature request. ExpiryDays is a
// pointer so an omitted field falls back to the configured default while an
// explicit 0 still means "expires immediately".
type createSignatureRequestRequest struct {
	Method           string `json:"method"`
	RecipientContact string `json:"recipientContact"`
	ExpiryDays       *int   `json:"expiryDays"`
	ExpectedVersion  int64  `json:"expectedVersion"`
}

// versionRequest carries only the optimistic concurrency token. Used by
// resend, cancel, and retry.
type versionRequest struct {
	ExpectedVersion int64 `json:"expectedVersion"`
}

// signatureCallbackRequest is what the e-signature provider posts back.
// SignedAt defaults to the request time when the provider omits it.
type signatureCallbackRequest struct {
	SignedAt *time.Time `json:"signedAt"`
}

type createSubmissionRequest struct {
	CompanyID               string `json:"companyId"`
	Method                  string `json:"method"`
	IncludeRelatedDocuments bool   `json:"includeRelatedDocuments"`
	ExpectedVersion         int64  `json:"expectedVersion"`
}

type carrierCallbackRequest struct {
	Outcome         string `json:"outcome"`
	ReferenceNumber string `json:"referenceNumber"`
	Notes           string `json:"notes"`
}

// reportRequest selects the documents a summary is computed over.
type reportRequest struct {
	DocumentIDs []string `json:"documentIds"`
}
