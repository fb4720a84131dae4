package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

// commitLockID serializes ledger commits across concurrent builds so that a
// content hash can never be accepted twice.
const commitLockID = 2000

// LoadAll returns every committed content fingerprint.
func (db *DB) LoadAll(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `SELECT content_hash FROM used_content`)
	if err != nil {
		return nil, fmt.Errorf("load used content: %w", err)
	}
	defer rows.Close()

	var hashes []string

	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("scan used content: %w", err)
		}

		hashes = append(hashes, hash)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate used content: %w", err)
	}

	return hashes, nil
}

// Contains reports whether a fingerprint has been committed.
func (db *DB) Contains(ctx context.Context, hash string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM used_content WHERE content_hash = $1)`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check used content: %w", err)
	}

	return exists, nil
}

// AddMany appends fingerprints to the persisted set. The insert runs in one
// transaction under an advisory lock, making commits single-writer. When a
// fingerprint is already present the transaction rolls back and
// ErrContentReused is returned, so a commit racing another build over the
// same content appends nothing.
func (db *DB) AddMany(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", commitLockID); err != nil {
			return fmt.Errorf("acquire commit lock: %w", err)
		}

		batch := &pgx.Batch{}
		for _, hash := range hashes {
			batch.Queue(`INSERT INTO used_content (content_hash) VALUES ($1) ON CONFLICT DO NOTHING`, hash)
		}

		results := tx.SendBatch(ctx, batch)

		var inserted int64

		for range hashes {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()

				return fmt.Errorf("insert used content: %w", err)
			}

			inserted += tag.RowsAffected()
		}

		if err := results.Close(); err != nil {
			return fmt.Errorf("close insert batch: %w", err)
		}

		if inserted != int64(len(hashes)) {
			return fmt.Errorf("%w: %d of %d fingerprints already present",
				apperrors.ErrContentReused, int64(len(hashes))-inserted, len(hashes))
		}

		return nil
	})
}
