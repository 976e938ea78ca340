// Package submission holds the carrier-submission subsystem: the record of a
// single attempt to deliver a signed document to an insurance carrier, plus
// the pure rules for when a submission may be created or resolved. Mutations
// happen only through the document lifecycle service.
package submission

import "time"

// Method is the channel used to deliver a document to a carrier.
type Method string

const (
	MethodEmail  Method = "email"
	MethodPortal Method = "portal"
	MethodAPI    Method = "api"
)

// Status tracks a single submission through carrier adjudication.
type Status string

const (
	StatusSent       Status = "sent"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Outcome is the terminal result reported by a carrier callback.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// Submission is one attempt to deliver a document to a carrier. Submissions
// are append-only per document; a retry after rejection appends a fresh one
// and leaves the rejected record in history.
type Submission struct {
	ID                      string
	DocumentID              string
	Seq                     int
	CompanyID               string
	Method                  Method
	IncludeRelatedDocuments bool
	CreatedAt               time.Time
	SubmittedAt             time.Time
	ProcessedAt             *time.Time
	ReferenceNumber         string
	Notes                   string
	Status                  Status
}

// ValidMethod reports whether m is a known delivery method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodEmail, MethodPortal, MethodAPI:
		return true
	}
	return false
}

// IsLive reports whether the submission is still awaiting adjudication.
func (s *Submission) IsLive() bool {
	return s.Status == StatusSent || s.Status == StatusProcessing
}

// IsResolved reports whether a terminal outcome has been recorded.
func (s *Submission) IsResolved() bool {
	return s.Status == StatusApproved || s.Status == StatusRejected
}
