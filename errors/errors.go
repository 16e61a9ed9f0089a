// Package errors defines the sentinel errors shared by the service layer and
// the HTTP boundary. Handlers match on these with errors.Is and map them to
// status codes without ever exposing storage detail.
package errors

import "fmt"

// Validation failures on incoming payloads.
var (
	ErrBlankUsername  = fmt.Errorf("username cannot be blank")
	ErrBlankPassword  = fmt.Errorf("password cannot be blank")
	ErrShortPassword  = fmt.Errorf("password must be at least 4 characters long")
	ErrBlankMessage   = fmt.Errorf("message text cannot be blank")
	ErrMessageTooLong = fmt.Errorf("message text cannot exceed 254 characters")
	ErrMissingID      = fmt.Errorf("record id is not set")
)

// Conflict and not-found conditions.
var (
	ErrUsernameTaken   = fmt.Errorf("username must be unique")
	ErrAccountNotFound = fmt.Errorf("account not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
)

// Unauthorized conditions.
var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotMessageOwner    = fmt.Errorf("account is not the owner of this message")
)

// ErrStorage wraps any failure of the persistence provider. The original
// cause travels with the wrap for diagnostics but never reaches a response
// body.
var ErrStorage = fmt.Errorf("storage failure")
