// Package apperr defines the sentinel errors the stores and auth layer report.
// Handlers translate them into HTTP status codes.
package apperr

import "errors"

var (
	// ErrUnauthorized: missing, invalid or expired credentials/token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden: authenticated but not the resource owner.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: no matching record under the caller's scope.
	ErrNotFound = errors.New("not found")
	// ErrConflict: uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrMalformedHash: a stored password hash is not a recognized format.
	// Internal; never surfaced as an authentication failure.
	ErrMalformedHash = errors.New("malformed password hash")
)
