// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Password is the bcrypt hash of the user's password, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Tasks is populated only by lookups that preload it.
	Tasks []taskentity.Task `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
