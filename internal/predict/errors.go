package predict

import "errors"

// Error kinds surfaced by the prediction engine. Callers can test for them
// with errors.Is after unwrapping whatever context was added along the way.
var (
	// ErrSizeMismatch reports parallel sample arrays of unequal length.
	// It is a contract violation and is never recovered from.
	ErrSizeMismatch = errors.New("sample arrays must have the same length")

	// ErrBadCompassPoints reports an unsupported compass resolution.
	ErrBadCompassPoints = errors.New("compass points must be one of 4, 8, 16")

	// ErrPrediction wraps any failure while computing visibility windows,
	// including failures of the underlying propagation service.
	ErrPrediction = errors.New("visibility prediction failed")
)
