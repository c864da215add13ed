package cycle

import "errors"

// Cycler errors.
var (
	// ErrInvalidIndex is returned when an index is outside [0, Len()).
	ErrInvalidIndex = errors.New("cycle: invalid index")

	// ErrInvalidConfiguration is returned by New for unusable options.
	ErrInvalidConfiguration = errors.New("cycle: invalid configuration")

	// ErrClosed is returned by operations on a closed Cycler.
	ErrClosed = errors.New("cycle: cycler closed")

	// ErrReentrant is returned when an observer calls back into the Cycler
	// while an event is being dispatched.
	ErrReentrant = errors.New("cycle: reentrant call from observer")
)
