// Package dto converts task entities to the API models.
package dto

import (
	"task_backend/internal/api"
	"task_backend/internal/feature/tasks/domain/entity"
)

// FromEntity converts a task to its JSON representation.
func FromEntity(t *entity.Task) api.Task {
	return api.Task{
		Id:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		OwnerId:     t.OwnerID,
	}
}

// FromEntities converts tasks, always returning a non-nil slice so it encodes as [].
func FromEntities(tasks []entity.Task) []api.Task {
	out := make([]api.Task, 0, len(tasks))
	for i := range tasks {
		out = append(out, FromEntity(&tasks[i]))
	}
	return out
}
