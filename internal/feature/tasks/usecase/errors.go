// Package usecase implements the business logic for the tasks feature.
package usecase

import "task_backend/internal/shared/apperr"

var (
	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = apperr.New(apperr.KindNotFound, "TASK_NOT_FOUND", "task not found")

	// ErrNotTaskOwner is returned when the caller tries to modify a task owned by another user.
	ErrNotTaskOwner = apperr.New(apperr.KindForbidden, "NOT_TASK_OWNER", "you are not the owner of this task")

	// ErrInvalidTitle is returned when a title is empty or longer than 255 characters.
	ErrInvalidTitle = apperr.New(apperr.KindValidation, "INVALID_TITLE", "title must be between 1 and 255 characters")
)
