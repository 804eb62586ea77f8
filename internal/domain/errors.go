package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Registration-flow sentinels. The verification state machine returns these
// instead of free-form errors so callers discriminate with errors.Is rather
// than matching on message text.
var (
	ErrAlreadyVerified       = errors.New("email already verified")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrCodeExpired           = errors.New("verification code expired")
	ErrInvalidCode           = errors.New("invalid verification code")
	ErrAttemptsExhausted     = errors.New("verification attempts exhausted")
)
