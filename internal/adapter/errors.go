package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnreachable wraps transport failures where no response was
	// received at all.
	ErrServerUnreachable = errors.New("server unreachable")

	// ErrNoAccessToken is returned for authenticated calls when the token
	// store holds no token for the username.
	ErrNoAccessToken = errors.New("no access token")

	// ErrTokenExpired is returned before sending when the stored JWT has
	// already passed its exp claim.
	ErrTokenExpired = errors.New("access token expired")

	// ErrMissingToken is returned when signup or login succeed but the
	// response carries no bearer token.
	ErrMissingToken = errors.New("response carries no access token")
)
