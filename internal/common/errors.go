// Package common defines shared constants and sentinel errors used across
// the coinkeeper client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors (invariant violations, never persisted).
	ErrValidation = errors.New("validation error")

	// Local persistence failures.
	ErrStorage = errors.New("storage error")

	// Remote document store unreachable (network, auth or timeout).
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// A sync cycle is already in flight for this session.
	ErrSyncInProgress = errors.New("sync already in progress")

	// Generic internal flow-control error.
	ErrInternal = errors.New("internal error")
)
