package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astrocards/internal/adapters/cache"
	"astrocards/internal/adapters/weatherstack"
	"astrocards/internal/adapters/web"
	"astrocards/internal/config"
	"astrocards/internal/usecases"
	"astrocards/pkg/log"
	"astrocards/pkg/log/transporters"
)

// astroCache is the cache the provider owns and must close.
type astroCache interface {
	usecases.AstroCache
	Close() error
}

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
	logger := log.New(level, transporters.NewStdout()).With("service", "astro-provider")
	log.SetDefault(logger)
	defer logger.Shutdown()

	if cfg.Provider.Weatherstack.AccessKey == "" {
		log.GlobalWarn("WEATHER_KEY is empty, upstream requests will be rejected")
	}

	astro := newCache(cfg.Provider.Cache)
	defer astro.Close()

	// Initialize adapters and use cases
	upstream := weatherstack.NewClient(cfg.Provider.Weatherstack.BaseURL, cfg.Provider.Weatherstack.AccessKey, nil)
	fetchUC := usecases.NewFetchAstroUseCase(upstream)
	getAstroUC := usecases.NewGetAstroUseCase(astro, fetchUC)

	app := web.NewApp("Astro Provider", nil)
	web.SetupAPIRoutes(app, web.NewAPIHandlers(getAstroUC, cfg.Web.RequestTimeout), cfg.Provider.AllowedOrigins)

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

	log.GlobalInfo("starting astro provider",
		"port", cfg.Provider.Port,
		"cache", cfg.Provider.Cache.Backend,
		"allowed_origins", cfg.Provider.AllowedOrigins)
	if err := app.Listen(":" + cfg.Provider.Port); err != nil {
		log.GlobalError("server stopped", "error", err)
	}
}

// newCache returns the configured backend, falling back to memory when
// valkey is unreachable.
func newCache(cfg config.CacheConfig) astroCache {
	if cfg.Backend != "valkey" {
		return cache.NewMemoryCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := cache.Dial(ctx, cfg.ValkeyAddr)
	if err != nil {
		log.GlobalError("valkey unavailable, falling back to memory cache", "addr", cfg.ValkeyAddr, "error", err)
		return cache.NewMemoryCache()
	}

	log.GlobalInfo("valkey cache enabled", "addr", cfg.ValkeyAddr)
	return cache.NewValkeyCache(client, cfg.Prefix)
}
