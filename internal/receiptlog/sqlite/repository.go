// Package sqlite provides a SQLite-backed implementation of
// receiptlog.Repository on the database opened by sqlitedb.Open.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jcmexdev/pos-checkout/internal/pkg/sqlitedb"
	"github.com/jcmexdev/pos-checkout/internal/receiptlog"
)

// Repository is the SQLite implementation of receiptlog.Repository.
type Repository struct {
	db *sql.DB
}

var _ receiptlog.Repository = (*Repository)(nil)

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save appends entry. Replaying an identical receipt keeps the first row;
// another receipt under the same id fails with receiptlog.ErrConflict.
func (r *Repository) Save(ctx context.Context, entry *receiptlog.Entry) error {
	payload, err := json.Marshal(entry.Receipt)
	if err != nil {
		return fmt.Errorf("sqlite: encode receipt %q: %w", entry.Receipt.ID, err)
	}

	const q = `
		INSERT INTO receipts
			(receipt_id, terminal_id, issued_at, total, payment_method, customer_name, payload, trace_id, span_id, recorded_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	rec := entry.Receipt
	_, err = r.db.ExecContext(ctx, q,
		rec.ID,
		rec.TerminalID,
		rec.IssuedAt.UTC().Format(sqlitedb.TimeLayout),
		rec.Total.StringFixed(2),
		string(rec.PaymentMethod),
		rec.CustomerName,
		string(payload),
		entry.TraceID,
		entry.SpanID,
		entry.RecordedAt.UTC().Format(sqlitedb.TimeLayout),
	)
	if err == nil {
		return nil
	}
	if !isConstraintViolation(err) {
		return fmt.Errorf("sqlite: save receipt %q: %w", rec.ID, err)
	}

	var existing string
	if qerr := r.db.QueryRowContext(ctx, `SELECT payload FROM receipts WHERE receipt_id = ?`, rec.ID).Scan(&existing); qerr != nil {
		return fmt.Errorf("sqlite: save receipt %q: %w", rec.ID, errors.Join(err, qerr))
	}
	if existing == string(payload) {
		return nil
	}
	return fmt.Errorf("sqlite: save receipt %q for terminal %q: %w", rec.ID, rec.TerminalID, receiptlog.ErrConflict)
}

func isConstraintViolation(err error) bool {
	var se *moderncsqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func (r *Repository) Get(ctx context.Context, receiptID string) (*receiptlog.Entry, error) {
	const q = `
		SELECT payload, trace_id, span_id, recorded_at
		FROM   receipts
		WHERE  receipt_id = ?`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, receiptID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: receipt %q: %w", receiptID, receiptlog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get receipt %q: %w", receiptID, err)
	}
	return entry, nil
}

// ListByTerminal returns the newest entries first. limit <= 0 means 50.
func (r *Repository) ListByTerminal(ctx context.Context, terminalID string, limit int) ([]*receiptlog.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT payload, trace_id, span_id, recorded_at
		FROM   receipts
		WHERE  terminal_id = ?
		ORDER  BY issued_at DESC, seq DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, terminalID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list receipts for %q: %w", terminalID, err)
	}
	defer rows.Close()

	var out []*receiptlog.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list receipts for %q: %w", terminalID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list receipts for %q: %w", terminalID, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*receiptlog.Entry, error) {
	var (
		e          receiptlog.Entry
		payload    string
		recordedAt string
	)
	if err := s.Scan(&payload, &e.TraceID, &e.SpanID, &recordedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &e.Receipt); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", recordedAt, err)
	}
	e.RecordedAt = t
	return &e, nil
}
