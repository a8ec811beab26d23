package columns

import "errors"

// Sentinel errors for package columns.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Input shape errors
	ErrMissingHeader = errors.New("csv input has no header row")
	ErrShortRow      = errors.New("row has fewer fields than the header requires")
)
