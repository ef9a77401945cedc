package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/api"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/app"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}
	if cfg.Environment().IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.Build(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build application")
	}

	router := api.NewRouter(api.NewHandler(a.Orchestrator), api.RouterConfig{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logx.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.Environment().String()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := a.Close(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Failed to close stores")
	}

	logx.Info().Msg("Server exited")
}
