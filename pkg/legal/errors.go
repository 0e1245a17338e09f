package legal

import "errors"

var (
	// ErrConnection wraps transport-level failures reaching the legal API.
	ErrConnection = errors.New("legal api unreachable")

	// ErrInvalidResponse means the API answered but the envelope is missing
	// required fields.
	ErrInvalidResponse = errors.New("legal api returned an invalid response")

	// ErrProcessNotFound maps the API's not-found answer for a detail fetch.
	// This is the one error a user can correct by picking another process.
	ErrProcessNotFound = errors.New("process not found")
)
