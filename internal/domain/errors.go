package domain

import "errors"

// Error taxonomy shared by the services and the web layer. Handlers match
// these with errors.Is and turn them into a flash message plus a redirect;
// none of them are fatal to a request.
var (
	// ErrDuplicateUsername is returned when registering a username that
	// already exists.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrWeakPassword is returned when a registration password is shorter
	// than four characters.
	ErrWeakPassword = errors.New("password too short")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound is returned when a record does not exist or is owned by
	// a different account. Ownership mismatches are deliberately
	// indistinguishable from missing rows.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidDateFormat marks a due date that does not parse as
	// YYYY-MM-DD. It is non-fatal: the operation proceeds with the date
	// left unset or unchanged.
	ErrInvalidDateFormat = errors.New("invalid due date format")
)
