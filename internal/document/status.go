// Package document defines the canonical document status model and the
// aggregate record the lifecycle service operates on. The transition table
// here is the single source of truth: nothing mutates a document status
// without passing CanTransition.
package document

// Status is the canonical document state. The string values are part of the
// API contract and must not change.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusPendingSignature Status = "pending_signature"
	StatusSigned           Status = "signed"
	StatusPendingSend      Status = "pending_send"
	StatusSent             Status = "sent"
	StatusProcessing       Status = "processing"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusExpired          Status = "expired"
)

// transitions is the legal-transition table. Absence means illegal; approved
// is terminal, and a rejected document may only go back to sent (retry).
var transitions = map[Status][]Status{
	StatusDraft:            {StatusPendingSignature},
	StatusPendingSignature: {StatusSigned, StatusExpired},
	StatusExpired:          {StatusPendingSignature},
	StatusSigned:           {StatusPendingSend, StatusSent},
	StatusPendingSend:      {StatusSent},
	StatusSent:             {StatusProcessing},
	StatusProcessing:       {StatusApproved, StatusRejected},
	StatusRejected:         {StatusSent},
}

// Valid reports whether s is one of the nine canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingSignature, StatusSigned, StatusPendingSend,
		StatusSent, StatusProcessing, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// AllStatuses returns the canonical status set, for exhaustive iteration in
// consumers and tests.
func AllStatuses() []Status {
	return []Status{
		StatusDraft, StatusPendingSignature, StatusSigned, StatusPendingSend,
		StatusSent, StatusProcessing, StatusApproved, StatusRejected, StatusExpired,
	}
}

// CanTransition reports whether from -> to is in the legal-transition table.
// Pure; no I/O.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
