package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notedesk/internal/notes/adapters/cache"
	notesHTTP "notedesk/internal/notes/adapters/http"
	"notedesk/internal/notes/adapters/http/templates"
	"notedesk/internal/notes/adapters/postgres"
	"notedesk/internal/notes/app"
	"notedesk/internal/notes/config"
	"notedesk/internal/notes/db"
	portcache "notedesk/internal/notes/ports/cache"
	"notedesk/pkg/db/redis"
	"notedesk/pkg/logger"
	"notedesk/pkg/shutdown"
)

// Константы для сообщений об ошибках.
const (
	ErrInitDB            = "failed to initialize database"
	ErrCreateRedisClient = "failed to create Redis client"
	ErrParseTemplates    = "failed to parse templates"
	ErrStartHTTPServer   = "failed to start HTTP server"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogInitCache           = "initializing counts cache"
	LogCacheDisabled       = "counts cache disabled"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDB           = "closing database connection"
	LogClosingCache        = "closing counts cache"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and serve the web application",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run(serve)
	},
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return err
	}

	counts, err := newCountsCache(ctx, &cfg.Redis, log)
	if err != nil {
		database.Close(ctx)
		return err
	}

	pages, err := templates.New()
	if err != nil {
		log.Error(ctx, ErrParseTemplates, zap.Error(err))
		database.Close(ctx)
		return err
	}

	server := notesHTTP.NewServer(&cfg.HTTP, pages)
	notesHTTP.SetupRouter(server,
		postgres.NewConnector(database.Database()),
		app.NewNoteUseCase(counts, nil),
		pages)

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServiceStarted)

	shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingCache)
			return counts.Close()
		},
	)

	log.Info(ctx, LogClosingDB)
	database.Close(ctx)

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}

func newCountsCache(ctx context.Context, cfg *config.RedisConfig, log *logger.Logger) (portcache.CountsCache, error) {
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NewNoopCounts(), nil
	}

	log.Info(ctx, LogInitCache, zap.String("address", cfg.ToClientConfig().Address()))
	client, err := redis.NewClient(ctx, cfg.ToClientConfig())
	if err != nil {
		log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
		return nil, err
	}
	return cache.NewRedisCounts(client, cfg.CountsTTL), nil
}
