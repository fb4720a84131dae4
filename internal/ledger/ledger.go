// Package ledger tracks content fingerprints consumed by past builds so that
// no source passage is turned into an exam item twice. The persisted set is
// append-only and monotonically non-shrinking.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	apperrors "github.com/finprep/exam-engine/internal/core/errors"
)

// Store is the durable fingerprint set. Only load-all, contains and add-many
// semantics are required of an implementation; no retry policy is applied
// here, failures surface to the caller. AddMany must be compare-and-append:
// when any submitted fingerprint is already present it adds nothing and
// returns ErrContentReused, so two builds working from stale snapshots can
// never both consume the same content.
type Store interface {
	LoadAll(ctx context.Context) ([]string, error)
	Contains(ctx context.Context, hash string) (bool, error)
	AddMany(ctx context.Context, hashes []string) error
}

// Ledger holds an in-memory snapshot of the persisted fingerprint set for
// one or more builds. Commits merge into both the store and the snapshot.
type Ledger struct {
	store  Store
	logger *zerolog.Logger

	mu     sync.RWMutex
	seen   map[string]struct{}
	loaded bool
}

// New creates a ledger over the given store. The snapshot is empty until
// Load is called.
func New(store Store, logger *zerolog.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Load reads the full persisted fingerprint set into the snapshot.
func (l *Ledger) Load(ctx context.Context) error {
	hashes, err := l.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load fingerprints: %v", apperrors.ErrLedgerUnavailable, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seen = make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		l.seen[h] = struct{}{}
	}

	l.loaded = true

	l.logger.Debug().Int("fingerprints", len(hashes)).Msg("ledger snapshot loaded")

	return nil
}

// Contains reports whether a fingerprint is present in the snapshot.
func (l *Ledger) Contains(hash string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.seen[hash]

	return ok
}

// Size returns the number of fingerprints in the snapshot.
func (l *Ledger) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.seen)
}

// Commit appends the given fingerprints to the persisted set and the
// snapshot. Called once at the end of a successful build with exactly the
// fingerprints of accepted items; an aborted build commits nothing. The
// append is all-or-nothing: when any fingerprint is already present, in the
// snapshot or in the store, the whole commit fails with ErrContentReused so
// a build racing another over the same content loses cleanly. The write lock
// is held across the store call, making in-process commits single-writer.
func (l *Ledger) Commit(ctx context.Context, hashes []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		return apperrors.ErrLedgerNotLoaded
	}

	if len(hashes) == 0 {
		return nil
	}

	for _, h := range hashes {
		if _, ok := l.seen[h]; ok {
			return fmt.Errorf("%w: %s", apperrors.ErrContentReused, h)
		}
	}

	if err := l.store.AddMany(ctx, hashes); err != nil {
		if errors.Is(err, apperrors.ErrContentReused) {
			return fmt.Errorf("commit fingerprints: %w", err)
		}

		return fmt.Errorf("%w: commit fingerprints: %v", apperrors.ErrLedgerUnavailable, err)
	}

	for _, h := range hashes {
		l.seen[h] = struct{}{}
	}

	l.logger.Info().Int("committed", len(hashes)).Msg("ledger commit")

	return nil
}
