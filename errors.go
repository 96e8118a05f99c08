package adopix

import "errors"

// Encoder preconditions are checked eagerly; none of these is retried
// internally and no partial document is ever produced.
var (
	// ErrInvalidDimension reports a non-positive grid width or height.
	ErrInvalidDimension = errors.New("adopix: width and height must be positive")

	// ErrDimensionMismatch reports frames that disagree on width or height.
	ErrDimensionMismatch = errors.New("adopix: all frames must share the same dimensions")

	// ErrEmptyInput reports a sequence encoder call with zero frames.
	ErrEmptyInput = errors.New("adopix: at least one frame is required")

	// ErrInvalidFrameRate reports a non-positive fps.
	ErrInvalidFrameRate = errors.New("adopix: fps must be positive")

	// ErrFloorOutOfRange reports an event bound to a floor outside the path.
	// It marks an internal invariant breach, not a user input error.
	ErrFloorOutOfRange = errors.New("adopix: event floor outside path range")
)
