package document

import (
	"time"

	"polisflow/internal/signature"
	"polisflow/internal/submission"
)

// Record is the persisted aggregate: the document itself plus its append-only
// signature request and carrier submission histories. Version implements
// optimistic concurrency; every accepted mutation increments it.
type Record struct {
	ID           string
	Name         string
	DocumentType string
	ClientID     string
	Status       Status
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SignatureRequests  []signature.Request
	CarrierSubmissions []submission.Submission
}

// LiveSignatureRequest returns the request still awaiting a signature, or nil.
// At most one request per document is live at a time.
func (r *Record) LiveSignatureRequest() *signature.Request {
	for i := range r.SignatureRequests {
		if r.SignatureRequests[i].IsLive() {
			return &r.SignatureRequests[i]
		}
	}
	return nil
}

// LiveSubmission returns the submission still awaiting adjudication, or nil.
func (r *Record) LiveSubmission() *submission.Submission {
	for i := range r.CarrierSubmissions {
		if r.CarrierSubmissions[i].IsLive() {
			return &r.CarrierSubmissions[i]
		}
	}
	return nil
}

// SignatureRequestByID finds a request in the history, or nil.
func (r *Record) SignatureRequestByID(id string) *signature.Request {
	for i := range r.SignatureRequests {
		if r.SignatureRequests[i].ID == id {
			return &r.SignatureRequests[i]
		}
	}
	return nil
}

// SubmissionByID finds a submission in the history, or nil.
func (r *Record) SubmissionByID(id string) *submission.Submission {
	for i := range r.CarrierSubmissions {
		if r.CarrierSubmissions[i].ID == id {
			return &r.CarrierSubmissions[i]
		}
	}
	return nil
}

// Clone deep-copies the record so stores can hand out mutation-safe copies.
func (r *Record) Clone() *Record {
	out := *r
	out.SignatureRequests = make([]signature.Request, len(r.SignatureRequests))
	copy(out.SignatureRequests, r.SignatureRequests)
	out.CarrierSubmissions = make([]submission.Submission, len(r.CarrierSubmissions))
	copy(out.CarrierSubmissions, r.CarrierSubmissions)
	return &out
}
