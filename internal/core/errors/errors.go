// Package errors provides centralized error definitions for the engine.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Configuration errors. These are fatal: no partial allocation plan is ever
// produced from a malformed weight table.
var (
	// ErrInvalidWeights indicates a malformed topic weight table.
	ErrInvalidWeights = errors.New("invalid topic weights")

	// ErrInvalidTotal indicates a non-positive requested item count.
	ErrInvalidTotal = errors.New("total items must be at least 1")

	// ErrUnknownSession indicates an unrecognized exam session type.
	ErrUnknownSession = errors.New("unknown session type")
)

// Ledger errors. Storage unavailability is fatal for a build; silently
// skipping it would void the cross-build uniqueness guarantee.
var (
	// ErrLedgerUnavailable indicates the durable fingerprint store could not
	// be reached during load or commit.
	ErrLedgerUnavailable = errors.New("ledger storage unavailable")

	// ErrLedgerNotLoaded indicates a commit was attempted before a snapshot load.
	ErrLedgerNotLoaded = errors.New("ledger snapshot not loaded")

	// ErrContentReused indicates a commit carried a fingerprint another build
	// already consumed. The losing build is rolled back entirely.
	ErrContentReused = errors.New("content fingerprint already committed")
)

// Pool and generation errors.
var (
	// ErrNoCandidates indicates the candidate pool is empty after dedup filtering.
	ErrNoCandidates = errors.New("no eligible candidates in pool")

	// ErrEmptyResponse indicates an empty response from the generation service.
	ErrEmptyResponse = errors.New("empty response")
)
