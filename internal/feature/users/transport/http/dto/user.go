// Package dto converts user entities to the API models.
package dto

import (
	"task_backend/internal/api"
	taskdto "task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/users/domain/entity"
)

// FromEntity converts a user and its loaded tasks. The password hash is never exposed.
func FromEntity(u *entity.User) api.User {
	return api.User{
		Id:       u.ID,
		Username: u.Username,
		Tasks:    taskdto.FromEntities(u.Tasks),
	}
}
