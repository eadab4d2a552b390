// Package usecase implements the business logic for the auth feature.
package usecase

import "task_backend/internal/shared/apperr"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username or a wrong password.
	// Both cases share one message so responses do not reveal which usernames exist.
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "invalid username or password")

	// ErrAuthenticationRequired is returned when no bearer token was presented,
	// or the token's subject no longer exists.
	ErrAuthenticationRequired = apperr.New(apperr.KindUnauthenticated, "AUTHENTICATION_REQUIRED", "authentication required")

	// ErrInvalidToken is returned for malformed, tampered or foreign-key tokens.
	ErrInvalidToken = apperr.New(apperr.KindUnauthenticated, "INVALID_TOKEN", "invalid token")

	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = apperr.New(apperr.KindUnauthenticated, "TOKEN_EXPIRED", "token expired")
)
