package di

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"task_backend/config"
	"task_backend/internal/app/router"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	userhandler "task_backend/internal/feature/users/transport/handler"
	"task_backend/internal/platform/db"
	platformhandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logging"
)

// Module wires every component of the service except the HTTP server itself.
// Callers install the fx event logger themselves, e.g. fx.WithLogger(NewLogger).
var Module = fx.Options(
	injectInfra(),
	injectUsecase(),
	injectHandler(),
	fx.Provide(NewRouter),
)

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logging.New,
		NewDB,
		NewRedis,
		db.NewTxManager,
		fx.Annotate(db.NewPinger, fx.As(new(platformhandler.Pinger))),
		NewPasswordHasher,
		NewTokenService,
		NewTaskCache,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		NewTaskUsecase,
		NewUserUsecase,
		NewAuthService,
		NewGuard,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		platformhandler.NewHealthHandler,
		NewAuthHandler,
		userhandler.NewUserHandler,
		taskhandler.NewTaskHandler,
	)
}

// RouterParams collects the router's dependencies from the graph.
type RouterParams struct {
	fx.In

	Logger *slog.Logger
	Guard  jwtmw.Guard
	Health *platformhandler.HealthHandler
	Auth   *authhandler.AuthHandler
	Users  *userhandler.UserHandler
	Tasks  *taskhandler.TaskHandler
}

// NewRouter builds the gin engine.
func NewRouter(p RouterParams) (*gin.Engine, error) {
	return router.NewRouter(p.Logger, p.Guard, router.Handlers{
		Health: p.Health,
		Auth:   p.Auth,
		Users:  p.Users,
		Tasks:  p.Tasks,
	})
}

// NewLogger routes fx's own lifecycle events through the application logger.
func NewLogger(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger}
}
