package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-user and wrong-password
	// logins so the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrPasswordMismatch reports a password change whose old password was
	// wrong. Distinct from NotFound and from ErrInvalidCredentials.
	ErrPasswordMismatch = errors.New("password_mismatch")

	// ErrUnauthorized reports an operation that requires an authenticated
	// principal invoked without one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrExpiredToken reports a refresh token past its expiry. The token row
	// is already gone by the time this error surfaces.
	ErrExpiredToken = errors.New("expired_refresh_token")
)
