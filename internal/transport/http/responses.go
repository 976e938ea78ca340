package httptransport

import (
	"time"

	"polisflow/internal/document"
	"polisflow/internal/document/service"
	"polisflow/internal/signature"
	"polisflow/internal/submission"
)

type signatureRequestResponse struct {
	ID               string     `json:"id"`
	DocumentID       string     `json:"documentId"`
	Seq              int        `json:"seq"`
	Method           string     `json:"method"`
	RecipientContact string     `json:"recipientContact,omitempty"`
	Link             string     `json:"link,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	SentAt           time.Time  `json:"sentAt"`
	SignedAt         *time.Time `json:"signedAt,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	RemindersSent    int        `json:"remindersSent"`
	Status           string     `json:"status"`
}

type submissionResponse struct {
	ID                      string     `json:"id"`
	DocumentID              string     `json:"documentId"`
	Seq                     int        `json:"seq"`
	CompanyID               string     `json:"companyId"`
	Method                  string     `json:"method"`
	IncludeRelatedDocuments bool       `json:"includeRelatedDocuments"`
	CreatedAt               time.Time  `json:"createdAt"`
	SubmittedAt             time.Time  `json:"submittedAt"`
	ProcessedAt             *time.Time `json:"processedAt,omitempty"`
	ReferenceNumber         string     `json:"referenceNumber,omitempty"`
	Notes                   string     `json:"notes,omitempty"`
	Status                  string     `json:"status"`
}

type documentResponse struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	DocumentType       string                     `json:"documentType,omitempty"`
	ClientID           string                     `json:"clientId,omitempty"`
	Status             string                     `json:"status"`
	Version            int64                      `json:"version"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
	SignatureRequests  []signatureRequestResponse `json:"signatureRequests"`
	CarrierSubmissions []submissionResponse       `json:"carrierSubmissions"`
	SignatureExpired   bool                       `json:"signatureExpired"`
}

func toSignatureRequestResponse(req *signature.Request) signatureRequestResponse {
	return signatureRequestResponse{
		ID:               req.ID,
		DocumentID:       req.DocumentID,
		Seq:              req.Seq,
		Method:           string(req.Method),
		RecipientContact: req.RecipientContact,
		Link:             req.Link,
		CreatedAt:        req.CreatedAt,
		SentAt:           req.SentAt,
		SignedAt:         req.SignedAt,
		ExpiresAt:        req.ExpiresAt,
		RemindersSent:    req.RemindersSent,
		Status:           string(req.Status),
	}
}

func toSubmissionResponse(sub *submission.Submission) submissionResponse {
	return submissionResponse{
		ID:                      sub.ID,
		DocumentID:              sub.DocumentID,
		Seq:                     sub.Seq,
		CompanyID:               sub.CompanyID,
		Method:                  string(sub.Method),
		IncludeRelatedDocuments: sub.IncludeRelatedDocuments,
		CreatedAt:               sub.CreatedAt,
		SubmittedAt:             sub.SubmittedAt,
		ProcessedAt:             sub.ProcessedAt,
		ReferenceNumber:         sub.ReferenceNumber,
		Notes:                   sub.Notes,
		Status:                  string(sub.Status),
	}
}

func toDocumentResponse(rec *document.Record, signatureExpired bool) documentResponse {
	resp := documentResponse{
		ID:                 rec.ID,
		Name:               rec.Name,
		DocumentType:       rec.DocumentType,
		ClientID:           rec.ClientID,
		Status:             string(rec.Status),
		Version:            rec.Version,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
		SignatureRequests:  make([]signatureRequestResponse, 0, len(rec.SignatureRequests)),
		CarrierSubmissions: make([]submissionResponse, 0, len(rec.CarrierSubmissions)),
		SignatureExpired:   signatureExpired,
	}
	for i := range rec.SignatureRequests {
		resp.SignatureRequests = append(resp.SignatureRequests, toSignatureRequestResponse(&rec.SignatureRequests[i]))
	}
	for i := range rec.CarrierSubmissions {
		resp.CarrierSubmissions = append(resp.CarrierSubmissions, toSubmissionResponse(&rec.CarrierSubmissions[i]))
	}
	return resp
}

func toViewResponse(view *service.View) documentResponse {
	return toDocumentResponse(view.Document, view.SignatureExpired)
}
