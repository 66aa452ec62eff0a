package errors

import "errors"

// Fatal errors abort a run before any report is written.
var (
	// ErrConnection means the target answered on neither http nor https.
	ErrConnection = errors.New("connection error")
	// ErrAPIRequestFailed means the fingerprinting service could not be queried.
	ErrAPIRequestFailed = errors.New("API request failed")
)

// Validation errors
var (
	ErrEmptyTarget     = errors.New("target cannot be empty")
	ErrMissingRequired = errors.New("missing required field")
)
