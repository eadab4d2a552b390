// Package usecase implements the business logic for the users feature.
package usecase

import "task_backend/internal/shared/apperr"

var (
	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")

	// ErrUsernameTaken is returned when registering or renaming to a username that already exists.
	ErrUsernameTaken = apperr.New(apperr.KindConflict, "USERNAME_TAKEN", "username already exists")

	// ErrInvalidUsername is returned for empty usernames or ones longer than 64 characters.
	ErrInvalidUsername = apperr.New(apperr.KindValidation, "INVALID_USERNAME", "username must be 1-64 characters")

	// ErrInvalidPassword is returned for empty passwords or ones longer than bcrypt's 72-byte input limit.
	ErrInvalidPassword = apperr.New(apperr.KindValidation, "INVALID_PASSWORD", "password must be 1-72 bytes")
)
