package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/DanielPopoola/payline-gateway/internal/journal"
)

var ErrDuplicateEntry = errors.New("journal entry already recorded")

type JournalRepository struct {
	db *DB
}

func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Save(ctx context.Context, entry *journal.Entry) error {
	query := `
		INSERT INTO remote_calls (
			id, method, order_ref, transaction_id, result_code,
			successful, error, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.Method,
		entry.OrderRef,
		entry.TransactionID,
		entry.ResultCode,
		entry.Successful,
		entry.Error,
		entry.Duration.Milliseconds(),
		entry.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.ID)
		}
		return fmt.Errorf("failed to save journal entry: %w", err)
	}

	return nil
}

// FindByOrderRef returns the calls made for an order, oldest first.
func (r *JournalRepository) FindByOrderRef(ctx context.Context, orderRef string) ([]*journal.Entry, error) {
	query := `
		SELECT id, method, order_ref, transaction_id, result_code,
		       successful, error, duration_ms, created_at
		FROM remote_calls
		WHERE order_ref = $1
		ORDER BY created_at, id
	`
	return r.query(ctx, query, orderRef)
}

// FindByTransactionID returns the calls made against a remote transaction,
// oldest first.
func (r *JournalRepository) FindByTransactionID(ctx context.Context, transactionID string) ([]*journal.Entry, error) {
	query := `
		SELECT id, method, order_ref, transaction_id, result_code,
		       successful, error, duration_ms, created_at
		FROM remote_calls
		WHERE transaction_id = $1
		ORDER BY created_at, id
	`
	return r.query(ctx, query, transactionID)
}

func (r *JournalRepository) query(ctx context.Context, query string, args ...any) ([]*journal.Entry, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.CollectableRow) (*journal.Entry, error) {
	var (
		e          journal.Entry
		durationMS int64
	)
	err := row.Scan(
		&e.ID,
		&e.Method,
		&e.OrderRef,
		&e.TransactionID,
		&e.ResultCode,
		&e.Successful,
		&e.Error,
		&durationMS,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Duration = time.Duration(durationMS) * time.Millisecond
	return &e, nil
}
