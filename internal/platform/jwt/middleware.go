package jwtmw

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	userentity "task_backend/internal/feature/users/domain/entity"
	"task_backend/internal/platform/http/response"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's ID (uint).
	ContextUserID = "userID"
	// ContextUser is the gin context key holding the authenticated *userentity.User.
	ContextUser = "user"

	bearerPrefix = "Bearer "
)

// Guard resolves a bearer token to the user it identifies.
// An empty token must be rejected with an authentication-required error.
type Guard interface {
	Authenticate(ctx context.Context, token string) (*userentity.User, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a
// valid "Authorization: Bearer <token>" header. The guard runs on every request.
func AuthRequired(guard Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		// "Bearer " 以外のスキームや小文字の "bearer" はトークンなしとして扱う
		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
			token = strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		}

		user, err := guard.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// UserFromContext returns the user stored by AuthRequired, if any.
func UserFromContext(c *gin.Context) (*userentity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*userentity.User)
	return user, ok && user != nil
}
