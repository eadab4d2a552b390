// Package params binds path parameters declared in the OpenAPI document.
package params

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"task_backend/internal/api"
	"task_backend/internal/shared/apperr"
)

// ErrInvalidID is returned when an {id} path segment is not a positive integer.
var ErrInvalidID = apperr.New(apperr.KindValidation, "INVALID_ID", "id must be a positive integer")

// ID binds the path parameter name as a simple-style integer and returns it as an entity ID.
func ID(c *gin.Context, name string) (uint, error) {
	var id api.Id
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
