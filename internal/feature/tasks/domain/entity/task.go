// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// Title is required and at most 255 characters.
	Title string `gorm:"size:255;not null"`

	// Description is optional; nil is rendered as JSON null.
	Description *string `gorm:"type:text"`

	Completed bool `gorm:"not null;default:false"`

	// OwnerID references the user who created the task. It is fixed at creation.
	OwnerID uint `gorm:"not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the task.
func (t *Task) OwnedBy(userID uint) bool {
	return t.OwnerID == userID
}
