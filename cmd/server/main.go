package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UkralStul/task-notes-service/internal/cache"
	"github.com/UkralStul/task-notes-service/internal/config"
	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/httpapi"
	"github.com/UkralStul/task-notes-service/internal/logging"
	"github.com/UkralStul/task-notes-service/internal/service"
	"github.com/UkralStul/task-notes-service/internal/storage"
	"github.com/UkralStul/task-notes-service/internal/storage/inmemory"
	"github.com/UkralStul/task-notes-service/internal/storage/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	envFile := flag.String("env", ".env", "Path to .env file")
	storageType := flag.String("storage", "", "Storage type (in-memory or postgres), overrides STORAGE")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if *storageType != "" {
		cfg.Storage.Type = *storageType
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	store, err := openStorage(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	defer store.Close()

	var (
		taskCache service.ListCache[domain.Task]
		noteCache service.ListCache[domain.Note]
		rdb       *redis.Client
	)
	if cfg.Cache.RedisURL != "" {
		rdb, err = cache.Connect(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		defer rdb.Close()
		taskCache = cache.NewListCache[domain.Task](rdb, "tasks", cfg.Cache.TTL)
		noteCache = cache.NewListCache[domain.Note](rdb, "notes", cfg.Cache.TTL)
		log.WithField("ttl", cfg.Cache.TTL).Info("list cache enabled")
	}

	router := httpapi.NewRouter(&httpapi.Handler{
		Tasks:    service.NewTaskService(store, taskCache, log),
		Notes:    service.NewNoteService(store, noteCache, log),
		Comments: service.NewCommentService(store, log),
		Subtasks: service.NewSubtaskService(store, log),
		Log:      log,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func openStorage(cfg *config.Config, log *logrus.Logger) (storage.Storage, error) {
	log.Infof("Starting server with %s storage", cfg.Storage.Type)

	var store storage.Storage
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		level := gormlogger.Warn
		if log.IsLevelEnabled(logrus.DebugLevel) {
			level = gormlogger.Info
		}
		pg, err := postgres.New(cfg.Storage.DatabaseURL, level)
		if err != nil {
			return nil, err
		}
		store = pg
	default:
		store = inmemory.New()
	}

	if cfg.Storage.Seed {
		if err := fillWithMockData(context.Background(), store); err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Info("Mock data filled successfully")
	}
	return store, nil
}
