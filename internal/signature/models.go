// Package signature holds the signature-request subsystem: the record of a
// single attempt to collect a client signature on a document, plus the pure
// rules for validity, expiry, and resend eligibility. Mutations happen only
// through the document lifecycle service.
package signature

import (
	"time"

	"github.com/go-playground/validator/v10"

	dErrors "polisflow/pkg/domain-errors"
)

// Method is the delivery channel for a signature request.
type Method string

const (
	MethodEmail Method = "email"
	MethodSMS   Method = "sms"
	MethodLink  Method = "link"
)

// Status tracks a single request. "cancelled" exists only at this level; the
// owning document never enters a cancelled status.
type Status string

const (
	StatusPending   Status = "pending_signature"
	StatusSigned    Status = "signed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Request is one attempt to collect a signature. Requests are append-only
// per document; superseded ones stay in history.
type Request struct {
	ID               string
	DocumentID       string
	Seq              int
	Method           Method
	RecipientContact string
	Link             string // one-time signing URL, link method only
	CreatedAt        time.Time
	SentAt           time.Time
	SignedAt         *time.Time
	ExpiresAt        *time.Time
	RemindersSent    int
	Status           Status
}

var validate = validator.New()

// ValidateMethod checks the method/contact combination before any request is
// created. Email and SMS need a well-formed contact; link requests must not
// carry one.
func ValidateMethod(method Method, contact string) error {
	switch method {
	case MethodEmail:
		if err := validate.Var(contact, "required,email"); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidMethodParameters,
				"method %s requires a valid email address", method)
		}
	case MethodSMS:
		if err := validate.Var(contact, "required,e164"); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidMethodParameters,
				"method %s requires a phone number in E.164 format", method)
		}
	case MethodLink:
		if contact != "" {
			return dErrors.New(dErrors.CodeInvalidMethodParameters,
				"method link does not take a recipient contact")
		}
	default:
		return dErrors.Newf(dErrors.CodeInvalidMethodParameters,
			"unknown signature method %q", method)
	}
	return nil
}

// IsExpired reports whether the request is past its expiry at the given
// instant. A recorded signature always wins: once SignedAt is set the request
// can no longer be considered expired, regardless of ExpiresAt. Monotonic in
// now for a fixed unsigned request.
func (r *Request) IsExpired(now time.Time) bool {
	if r.SignedAt != nil || r.ExpiresAt == nil {
		return false
	}
	return now.After(*r.ExpiresAt)
}

// IsLive reports whether this request is the one still awaiting a signature.
func (r *Request) IsLive() bool {
	return r.Status == StatusPending
}

// CanResend reports whether a resend is allowed: pending requests take a
// reminder, expired ones take a fresh request. Link requests have nothing to
// resend; the caller re-copies the same link.
func (r *Request) CanResend() bool {
	if r.Method == MethodLink {
		return false
	}
	switch r.Status {
	case StatusPending, StatusExpired:
		return true
	default:
		return false
	}
}
