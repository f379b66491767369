package core

import "errors"

// Every failure kind is fatal to a run. Nothing is retried; the only
// retry-like behavior is the bounded fixed-interval polling in poll.go.
var (
	ErrReadinessTimeout = errors.New("server did not become ready")
	ErrAssertionFailed  = errors.New("assertion failed")
	ErrSizeMismatch     = errors.New("snapshot size mismatch")
	ErrSnapshotMismatch = errors.New("snapshot differs from baseline")
	ErrDiagnostics      = errors.New("console or page errors observed")

	// ErrPollTimeout marks a predicate that never became true. Callers wrap
	// it into ErrAssertionFailed or ErrReadinessTimeout with their context.
	ErrPollTimeout = errors.New("condition not met before timeout")
)
