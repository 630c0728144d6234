package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astrocards/internal/adapters/astroapi"
	"astrocards/internal/adapters/web"
	"astrocards/internal/config"
	"astrocards/pkg/log"
	"astrocards/pkg/log/transporters"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := log.New(log.Error, transporters.NewConsole())
		bootLogger.Error("invalid configuration", "error", err)
		bootLogger.Close()
		os.Exit(1)
	}

	// Level already checked by config.Validate.
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(level, transporters.NewStdout()).With("service", "astro-server")
	log.SetDefault(logger)
	defer logger.Shutdown()

	// Query Client: one shared HTTP client, per-request deadlines come from
	// the submit context.
	client := astroapi.NewClient(cfg.Web.APIEndpoint, &http.Client{})

	sessions := web.NewSessionStore(client, cfg.Web.SessionTTL)
	defer sessions.Close()

	handlers := web.NewHandlers(sessions, cfg.Web.RequestTimeout)

	app := web.NewApp("Astro Cards", web.PageErrorHandler)
	web.SetupRoutes(app, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.GlobalError("shutdown failed", "error", err)
		}
	}()

	log.GlobalInfo("starting astro cards", "port", cfg.Web.Port, "api_endpoint", cfg.Web.APIEndpoint)
	if err := app.Listen(":" + cfg.Web.Port); err != nil {
		log.GlobalError("server stopped", "error", err)
	}
}
