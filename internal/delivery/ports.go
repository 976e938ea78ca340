// Package delivery declares the outbound capability ports the lifecycle
// service dispatches through. Implementations (SMTP, SMS gateway, carrier
// portals) live in the host application; the engine only requires that a
// dispatch either succeeds before a transition commits or fails the whole
// operation.
package delivery

import (
	"context"

	"polisflow/internal/submission"
)

//go:generate mockgen -source=ports.go -destination=mocks/delivery_mocks.go -package=mocks

// SignatureDispatch is what the contact-delivery capability needs to reach a
// signer.
type SignatureDispatch struct {
	DocumentID   string
	DocumentName string
	Recipient    string
}

// ContactDelivery sends signature requests to clients.
type ContactDelivery interface {
	SendEmail(ctx context.Context, d SignatureDispatch) error
	SendSMS(ctx context.Context, d SignatureDispatch) error
	// GenerateSignatureLink returns a one-time signing link for the document.
	GenerateSignatureLink(ctx context.Context, documentID string) (string, error)
}

// CarrierDelivery submits documents to insurance carriers.
type CarrierDelivery interface {
	SubmitViaEmail(ctx context.Context, sub submission.Submission) error
	SubmitViaPortal(ctx context.Context, sub submission.Submission) error
	SubmitViaAPI(ctx context.Context, sub submission.Submission) error
}
