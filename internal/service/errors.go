package service

import "errors"

var (
	// ErrNotFound means the target row vanished between read and write.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the credentials did not verify.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrForbidden means the credentials verified but the profile lacks
	// the dashboard admin flag.
	ErrForbidden = errors.New("dashboard access denied")
)

// ValidationError is a rejected payload; the operation was never attempted.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(msg string) error { return &ValidationError{msg: msg} }

// ConflictError is a uniqueness violation (slug, feature key, module name,
// access code).
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

func conflictErr(msg string) error { return &ConflictError{msg: msg} }
