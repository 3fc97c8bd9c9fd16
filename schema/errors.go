package schema

import "errors"

// Error taxonomy for the engine. Callers match with errors.Is so that
// wrapped context (paths, hints) survives the trip to the boundary.
var (
	// ErrInvalidInput marks malformed or out-of-range raw data. The
	// evaluation aborts without a ledger append.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig marks a degenerate weight configuration. The aggregator
	// recovers locally (GV = 0, no signal means no penalty) and the
	// evaluation continues with an explanatory note.
	ErrConfig = errors.New("degenerate configuration")

	// ErrStorageUnavailable marks a ledger that cannot be read or
	// written. Under enforce mode this forces a fail-safe verdict;
	// under inform mode it degrades to a warning.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
