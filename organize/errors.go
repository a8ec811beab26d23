package organize

import "errors"

// Sentinel errors for package organize.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Tree shape errors
	ErrNotDirectory = errors.New("expected directory but got file")
	ErrNotRegular   = errors.New("expected regular file, got directory")

	// Classification errors
	ErrUnknownPeriod = errors.New("unknown period")
)
