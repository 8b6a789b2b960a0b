package auth

import "errors"

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrMissingSecret      = errors.New("jwt secret is not configured")
)
