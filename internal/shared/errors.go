package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates registration against an email that is already taken.
	ErrDuplicateEmail = errors.New("user already registered")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken occurs when token verification fails.
	ErrInvalidToken = errors.New("invalid token")
)
