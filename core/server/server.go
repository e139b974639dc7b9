package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"group-planner/core/cache"
	"group-planner/core/config"
	"group-planner/core/constants"
	"group-planner/core/database"
	"group-planner/core/logger"
	"group-planner/core/middleware"
	"group-planner/core/storage"
	"group-planner/core/worker"
	"group-planner/modules/availability"
	"group-planner/modules/event"
	"group-planner/modules/group"
	"group-planner/modules/suggestion"
)

// Run boots the HTTP server, the background worker and all modules, then
// blocks until shutdown
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	// Redis backs both the suggestion cache and the task queue; without it
	// the cache degrades to in-process memory and background refresh is off
	var store cache.Cache
	var tasks worker.Enqueuer
	var taskClient *worker.Client
	var taskServer *worker.Server

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.Warn("Server:Run:RedisUnavailable", "error", err, "fallback", "memory cache")
		store = cache.NewMemoryCache()
	} else {
		store = redisCache
		taskClient = worker.NewClient(cfg.Redis)
		tasks = taskClient
		taskServer = worker.NewServer(cfg.Redis)
	}

	var objectStore storage.ObjectStore
	if cfg.AWS.ExportBucket != "" {
		s3Store, err := storage.NewS3Store(cfg.AWS)
		if err != nil {
			logger.Warn("Server:Run:S3Unavailable", "error", err)
		} else {
			objectStore = s3Store
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.ContextTimeout(constants.DefaultRequestTimeout))

	mw := middleware.New(cfg)

	groupSvc := group.Init(e, &db, mw)
	availability.Init(e, &db, objectStore, mw)
	suggestionSvc := suggestion.Init(e, &db, store, tasks, cfg, mw)
	event.Init(e, &db, groupSvc, mw)

	if taskServer != nil {
		taskServer.HandleFunc(worker.TaskSuggestionRefresh, func(ctx context.Context, t *asynq.Task) error {
			payload, err := worker.ParseSuggestionRefreshPayload(t)
			if err != nil {
				return err
			}
			return suggestionSvc.RefreshSuggestions(ctx, payload.GroupID)
		})
		if err := taskServer.Start(); err != nil {
			logger.Warn("Server:Run:WorkerStartFailed", "error", err)
			taskServer = nil
		}
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:StartFailed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Run", "msg", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if taskServer != nil {
		taskServer.Shutdown()
	}
	if taskClient != nil {
		_ = taskClient.Close()
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
