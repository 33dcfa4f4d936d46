package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "go-converse/cmd/api/router/v1"
	cacheAdapter "go-converse/internal/infrastructure/cache/adapter"
	"go-converse/internal/infrastructure/config"
	"go-converse/internal/infrastructure/database"
	"go-converse/internal/infrastructure/logger"
	queueAdapter "go-converse/internal/infrastructure/queue/adapter"
	"go-converse/internal/infrastructure/realtime"
	"go-converse/internal/pkg/social/application/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal("database connect", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("database schema", zap.Error(err))
	}

	// Redis cache, shared client also backs the realtime relay
	cache, err := cacheAdapter.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer func() { _ = cache.Close() }()

	// Queue client and in-process worker for operational alerts
	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("queue client", zap.Error(err))
	}
	defer func() { _ = queueClient.Close() }()

	queueServer, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.AsynqConcurrency, cfg.AsynqQueues, log)
	if err != nil {
		log.Fatal("queue server", zap.Error(err))
	}
	task.RegisterIntegrityAlertTask(queueServer, log)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			log.Error("queue server stopped", zap.Error(err))
		}
	}()

	// Realtime hub plus cross-instance event relay
	hub := realtime.NewHub()
	defer hub.Shutdown()
	notifier := realtime.NewNotifier(hub, cache.Client(), log)
	go notifier.RunBridge(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, cache, notifier, queueClient, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := queueServer.Stop(shutdownCtx); err != nil {
		log.Error("queue shutdown", zap.Error(err))
	}
}

// requestLogger logs one structured line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
