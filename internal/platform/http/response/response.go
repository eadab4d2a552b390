// Package response renders application errors as JSON bodies.
package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"task_backend/internal/api"
	"task_backend/internal/platform/logging"
	"task_backend/internal/shared/apperr"
)

const (
	codeInternal       = "INTERNAL_ERROR"
	codeInvalidRequest = "INVALID_REQUEST"
	msgInternal        = "internal error"
	msgInvalidRequest  = "invalid request body"
)

// Error writes err as an ErrorResponse. Application errors keep their message and code;
// anything else is logged and reported as a bare 500.
func Error(c *gin.Context, err error) {
	c.JSON(statusAndBody(c, err))
}

// Abort is Error followed by aborting the handler chain.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusAndBody(c, err))
}

// BindError reports a request body that failed to decode or validate.
func BindError(c *gin.Context, err error) {
	body := api.ErrorResponse{Error: msgInvalidRequest, Code: codeInvalidRequest}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, describe(fe))
		}
		body.Details = &details
	}

	logging.FromContext(c.Request.Context()).Warn("request rejected",
		"error", err,
		"remote_addr", c.ClientIP(),
	)
	c.JSON(http.StatusBadRequest, body)
}

func statusAndBody(c *gin.Context, err error) (int, api.ErrorResponse) {
	if e, ok := apperr.As(err); ok && e.Kind() != apperr.KindInternal {
		return e.Kind().HTTPStatus(), api.ErrorResponse{Error: e.Message(), Code: e.Code()}
	}

	logging.FromContext(c.Request.Context()).Error("unhandled error",
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
	)
	return http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal, Code: codeInternal}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "username":
		return fmt.Sprintf("%s must be 1-64 characters", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
