package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"polisflow/internal/document"
	"polisflow/internal/signature"
	"polisflow/internal/submission"
)

// PostgresStore persists document aggregates in PostgreSQL. The optimistic
// version check rides on the documents row; sub-records are upserted by
// (document_id, seq) inside the same transaction.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Schema is the DDL this store expects. Applied by deploy tooling; exposed so
// integration tests can bootstrap a fresh database.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	document_type TEXT NOT NULL,
	client_id     TEXT NOT NULL,
	status        TEXT NOT NULL,
	version       BIGINT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS signature_requests (
	document_id       TEXT NOT NULL REFERENCES documents(id),
	seq               INT NOT NULL,
	id                TEXT NOT NULL,
	method            TEXT NOT NULL,
	recipient_contact TEXT NOT NULL DEFAULT '',
	link              TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL,
	sent_at           TIMESTAMPTZ NOT NULL,
	signed_at         TIMESTAMPTZ,
	expires_at        TIMESTAMPTZ,
	reminders_sent    INT NOT NULL DEFAULT 0,
	status            TEXT NOT NULL,
	PRIMARY KEY (document_id, seq)
);

CREATE TABLE IF NOT EXISTS carrier_submissions (
	document_id      TEXT NOT NULL REFERENCES documents(id),
	seq              INT NOT NULL,
	id               TEXT NOT NULL,
	company_id       TEXT NOT NULL,
	method           TEXT NOT NULL,
	include_related  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMPTZ NOT NULL,
	submitted_at     TIMESTAMPTZ NOT NULL,
	processed_at     TIMESTAMPTZ,
	reference_number TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	PRIMARY KEY (document_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);
`

// EnsureSchema applies the DDL. Integration-test helper.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, rec *document.Record) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO documents (id, name, document_type, client_id, status, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.ID, rec.Name, rec.DocumentType, rec.ClientID, string(rec.Status),
			rec.Version, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return s.upsertSubRecords(ctx, tx, rec)
	})
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*document.Record, error) {
	recs, err := s.queryRecords(ctx, `WHERE d.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *PostgresStore) FindBySignatureRequest(ctx context.Context, requestID string) (*document.Record, error) {
	recs, err := s.queryRecords(ctx,
		`WHERE d.id = (SELECT document_id FROM signature_requests WHERE id = $1)`, requestID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *PostgresStore) FindBySubmission(ctx context.Context, submissionID string) (*document.Record, error) {
	recs, err := s.queryRecords(ctx,
		`WHERE d.id = (SELECT document_id FROM carrier_submissions WHERE id = $1)`, submissionID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *PostgresStore) List(ctx context.Context, ids []string) ([]*document.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.queryRecords(ctx, `WHERE d.id = ANY($1)`, ids)
}

func (s *PostgresStore) ListPendingSignature(ctx context.Context) ([]*document.Record, error) {
	return s.queryRecords(ctx, `WHERE d.status = $1`, string(document.StatusPendingSignature))
}

func (s *PostgresStore) Update(ctx context.Context, rec *document.Record, expectedVersion int64) error {
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE documents
			SET name = $3, document_type = $4, client_id = $5, status = $6,
			    version = $2 + 1, updated_at = $7
			WHERE id = $1 AND version = $2`,
			rec.ID, expectedVersion, rec.Name, rec.DocumentType, rec.ClientID,
			string(rec.Status), rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Either the row is gone or another writer got there first.
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, rec.ID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("check document existence: %w", err)
			}
			if !exists {
				return ErrNotFound
			}
			return ErrVersionConflict
		}
		return s.upsertSubRecords(ctx, tx, rec)
	})
	if err != nil {
		return err
	}
	rec.Version = expectedVersion + 1
	return nil
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) upsertSubRecords(ctx context.Context, tx pgx.Tx, rec *document.Record) error {
	for i := range rec.SignatureRequests {
		req := &rec.SignatureRequests[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO signature_requests
				(document_id, seq, id, method, recipient_contact, link, created_at,
				 sent_at, signed_at, expires_at, reminders_sent, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (document_id, seq) DO UPDATE SET
				sent_at = EXCLUDED.sent_at,
				signed_at = EXCLUDED.signed_at,
				reminders_sent = EXCLUDED.reminders_sent,
				status = EXCLUDED.status`,
			rec.ID, req.Seq, req.ID, string(req.Method), req.RecipientContact,
			req.Link, req.CreatedAt, req.SentAt, req.SignedAt, req.ExpiresAt,
			req.RemindersSent, string(req.Status),
		)
		if err != nil {
			return fmt.Errorf("upsert signature request %d: %w", req.Seq, err)
		}
	}
	for i := range rec.CarrierSubmissions {
		sub := &rec.CarrierSubmissions[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO carrier_submissions
				(document_id, seq, id, company_id, method, include_related, created_at,
				 submitted_at, processed_at, reference_number, notes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (document_id, seq) DO UPDATE SET
				processed_at = EXCLUDED.processed_at,
				reference_number = EXCLUDED.reference_number,
				notes = EXCLUDED.notes,
				status = EXCLUDED.status`,
			rec.ID, sub.Seq, sub.ID, sub.CompanyID, string(sub.Method),
			sub.IncludeRelatedDocuments, sub.CreatedAt, sub.SubmittedAt,
			sub.ProcessedAt, sub.ReferenceNumber, sub.Notes, string(sub.Status),
		)
		if err != nil {
			return fmt.Errorf("upsert carrier submission %d: %w", sub.Seq, err)
		}
	}
	return nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, where string, args ...any) ([]*document.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.id, d.name, d.document_type, d.client_id, d.status, d.version,
		       d.created_at, d.updated_at
		FROM documents d `+where+` ORDER BY d.created_at`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var recs []*document.Record
	byID := map[string]*document.Record{}
	for rows.Next() {
		rec := &document.Record{}
		var status string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.DocumentType, &rec.ClientID,
			&status, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec.Status = document.Status(status)
		recs = append(recs, rec)
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	if len(recs) == 0 {
		return recs, nil
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	if err := s.loadSignatureRequests(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := s.loadSubmissions(ctx, byID, ids); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *PostgresStore) loadSignatureRequests(ctx context.Context, byID map[string]*document.Record, ids []string) error {
	rows, err := s.pool.Query(ctx, `
		SELECT document_id, seq, id, method, recipient_contact, link, created_at,
		       sent_at, signed_at, expires_at, reminders_sent, status
		FROM signature_requests
		WHERE document_id = ANY($1)
		ORDER BY document_id, seq`, ids)
	if err != nil {
		return fmt.Errorf("query signature requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req signature.Request
		var method, status string
		if err := rows.Scan(&req.DocumentID, &req.Seq, &req.ID, &method,
			&req.RecipientContact, &req.Link, &req.CreatedAt, &req.SentAt,
			&req.SignedAt, &req.ExpiresAt, &req.RemindersSent, &status); err != nil {
			return fmt.Errorf("scan signature request: %w", err)
		}
		req.Method = signature.Method(method)
		req.Status = signature.Status(status)
		if rec, ok := byID[req.DocumentID]; ok {
			rec.SignatureRequests = append(rec.SignatureRequests, req)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate signature requests: %w", err)
	}
	return nil
}

func (s *PostgresStore) loadSubmissions(ctx context.Context, byID map[string]*document.Record, ids []string) error {
	rows, err := s.pool.Query(ctx, `
		SELECT document_id, seq, id, company_id, method, include_related, created_at,
		       submitted_at, processed_at, reference_number, notes, status
		FROM carrier_submissions
		WHERE document_id = ANY($1)
		ORDER BY document_id, seq`, ids)
	if err != nil {
		return fmt.Errorf("query carrier submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub submission.Submission
		var method, status string
		if err := rows.Scan(&sub.DocumentID, &sub.Seq, &sub.ID, &sub.CompanyID,
			&method, &sub.IncludeRelatedDocuments, &sub.CreatedAt, &sub.SubmittedAt,
			&sub.ProcessedAt, &sub.ReferenceNumber, &sub.Notes, &status); err != nil {
			return fmt.Errorf("scan carrier submission: %w", err)
		}
		sub.Method = submission.Method(method)
		sub.Status = submission.Status(status)
		if rec, ok := byID[sub.DocumentID]; ok {
			rec.CarrierSubmissions = append(rec.CarrierSubmissions, sub)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate carrier submissions: %w", err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
var _ Store = (*MemoryStore)(nil)
