package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken for headers
// that are not of the form "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// ParseBearerToken extracts the token from an Authorization header value.
//
// Example usage:
//
//	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

// TokenExpiresAt reads the exp claim of a JWT without verifying its
// signature. The client never holds the signing key; the server remains
// the authority on validity.
//
// ok is false when the token is not a JWT or carries no exp claim.
func TokenExpiresAt(tokenString string) (expiresAt time.Time, ok bool) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether tokenString is a JWT whose exp claim lies
// before now. Opaque tokens are never considered expired.
func TokenExpired(tokenString string, now time.Time) bool {
	exp, ok := TokenExpiresAt(tokenString)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// FormatBearer returns the Authorization header value for token.
func FormatBearer(token string) string {
	return fmt.Sprintf("Bearer %s", token)
}
