// Package events records committed document lifecycle transitions as an
// append-only stream. Sinks range from an in-memory store in tests to a
// Kafka topic in production; the engine only emits, it never reads its own
// events for decisions.
package events

import (
	"context"
	"time"
)

// Type labels what happened to the document.
type Type string

const (
	TypeDocumentCreated           Type = "document.created"
	TypeSignatureRequestCreated   Type = "signature_request.created"
	TypeSignatureReminderSent     Type = "signature_request.reminder_sent"
	TypeSignatureRequestSigned    Type = "signature_request.signed"
	TypeSignatureRequestExpired   Type = "signature_request.expired"
	TypeSignatureRequestCancelled Type = "signature_request.cancelled"
	TypeSubmissionCreated         Type = "carrier_submission.created"
	TypeSubmissionProcessing      Type = "carrier_submission.processing"
	TypeSubmissionResolved        Type = "carrier_submission.resolved"
)

// Event is one committed lifecycle change. From/To are document statuses;
// they are equal when only a sub-record changed.
type Event struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"documentId"`
	Type       Type              `json:"type"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Timestamp  time.Time         `json:"timestamp"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// Store is the append-only sink interface.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDocument(ctx context.Context, documentID string) ([]Event, error)
}
