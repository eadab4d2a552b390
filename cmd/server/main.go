package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"task_backend/config"
	"task_backend/internal/app/di"
)

func main() {
	fx.New(
		di.Module,
		fx.WithLogger(di.NewLogger),
		fx.Invoke(startServer),
	).Run()
}

// startServer registers the HTTP server with the application lifecycle.
func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, engine *gin.Engine, logger *slog.Logger) {
	srv := &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(cfg.HTTP.Port)),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", slog.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", slog.Any("error", err))
					if err := shutdowner.Shutdown(fx.ExitCode(1)); err != nil {
						os.Exit(1)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()

			logger.Info("Shutting down HTTP server")
			return srv.Shutdown(shutdownCtx)
		},
	})
}
