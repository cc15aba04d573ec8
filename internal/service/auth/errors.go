package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the access token format is invalid or the
	// signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token format is invalid
	// or the signature doesn't match
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrWrongTokenType indicates a token was presented for the wrong scope,
	// e.g. a refresh token on an access-scoped call or vice versa. A missing
	// type discriminator also fails this check.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed login. The same error covers
	// both "no such user" and "wrong password" so responses cannot be used
	// to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive indicates the account exists but is deactivated
	ErrUserInactive = errors.New("user account is inactive")
)
