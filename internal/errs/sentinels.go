// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrValidation indicates input rejected locally, before any network call.
	ErrValidation = errors.New("validation")

	// ErrTransport indicates a network failure or a non-2xx response.
	ErrTransport = errors.New("transport")

	// ErrNotFound indicates the item no longer exists on the remote store.
	// Errors carrying it also match ErrTransport.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a failed credential check.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates the username is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotLoggedIn indicates no session is stored in the preference file.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrCancelled indicates the user declined a confirmation.
	ErrCancelled = errors.New("cancelled")

	// ErrNotEditing indicates a commit for an item that is not being edited.
	ErrNotEditing = errors.New("not editing")
)
