// Package store persists document aggregates. Updates are guarded by an
// optimistic version check so concurrent mutations against the same document
// serialize through compare-and-swap, not wall-clock ordering.
package store

import (
	"context"

	"polisflow/internal/document"
	dErrors "polisflow/pkg/domain-errors"
)

var (
	// ErrNotFound keeps store-level 404s consistent across implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "document not found")

	// ErrVersionConflict signals that the record changed since it was read.
	ErrVersionConflict = dErrors.New(dErrors.CodeConcurrentModification,
		"document was modified concurrently; re-read and retry")
)

// Store is the persistence port for document aggregates.
type Store interface {
	// Create persists a new record. The record's Version must be 1.
	Create(ctx context.Context, rec *document.Record) error

	// Get returns a copy of the record, or ErrNotFound.
	Get(ctx context.Context, id string) (*document.Record, error)

	// FindBySignatureRequest returns the record owning the given signature
	// request, or ErrNotFound.
	FindBySignatureRequest(ctx context.Context, requestID string) (*document.Record, error)

	// FindBySubmission returns the record owning the given carrier
	// submission, or ErrNotFound.
	FindBySubmission(ctx context.Context, submissionID string) (*document.Record, error)

	// List returns the records for the given ids, skipping unknown ones.
	List(ctx context.Context, ids []string) ([]*document.Record, error)

	// ListPendingSignature returns every record whose status is
	// pending_signature, for the expiry sweep.
	ListPendingSignature(ctx context.Context) ([]*document.Record, error)

	// Update persists rec if the stored version still equals expectedVersion,
	// then bumps rec.Version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, rec *document.Record, expectedVersion int64) error
}
