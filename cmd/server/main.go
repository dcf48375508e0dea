package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/api/handlers"
	"github.com/stitts-dev/gridiron-sim/internal/audit"
	enginecfg "github.com/stitts-dev/gridiron-sim/internal/engine/config"
	"github.com/stitts-dev/gridiron-sim/internal/engine/manager"
	"github.com/stitts-dev/gridiron-sim/internal/engine/orchestrator"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/internal/wsgame"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	structuredLogger := logger.Init(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("gridiron-sim").WithFields(logrus.Fields{
		"env":  cfg.Env,
		"port": cfg.Port,
	}).Info("starting simulation service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engineConfig, err := enginecfg.Load(cfg.ArchetypeConfigPath)
	if err != nil {
		logger.WithService("gridiron-sim").Fatalf("failed to load archetype config: %v", err)
	}

	auditSink, auditMemSink, cleanup := setupAuditSink(cfg, structuredLogger)
	defer cleanup()

	rosterProvider := setupRosterProvider(cfg, structuredLogger)

	mgr := manager.New(auditSink)
	orch := orchestrator.New(engineConfig, mgr, cfg.MaxPlaysPerGame)

	hub := wsgame.NewHub(structuredLogger)
	go hub.Run()

	refreshJob := startArchetypeRefreshCron(cfg, structuredLogger, func() {
		reloaded, err := enginecfg.Load(cfg.ArchetypeConfigPath)
		if err != nil {
			logger.WithService("gridiron-sim").WithError(err).Warn("archetype config refresh failed, keeping previous config")
			return
		}
		*engineConfig = *reloaded
		logger.WithService("gridiron-sim").Info("archetype config refreshed")
	})
	defer refreshJob.Stop()

	h := &handlers.Handlers{
		Orchestrator: orch,
		RosterSource: rosterProvider,
		Hub:          hub,
		AuditSink:    auditMemSink,
		Salt:         cfg.RNGSeedSalt,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", h.HealthCheck)
	router.POST("/games", h.StartGame)
	router.GET("/games/:gameID/plays", h.GamePlays)
	router.GET("/games/:gameID/result", h.GameResult)
	router.GET("/games/:gameID/stream", h.StreamGame)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("gridiron-sim").Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("gridiron-sim").Info("shutting down simulation service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("gridiron-sim").Fatalf("simulation service forced to shutdown: %v", err)
	}
}

// setupAuditSink prefers the persistent gorm sink when a database URL
// is configured, falling back to the in-memory sink (which also backs
// the /games/:gameID/plays query endpoint) otherwise.
func setupAuditSink(cfg *config.Config, log *logrus.Logger) (manager.AuditSink, *audit.InMemorySink, func()) {
	if cfg.DatabaseURL == "" {
		mem := audit.NewInMemorySink()
		return mem, mem, func() {}
	}

	db, err := database.NewAuditConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.WithError(err).Warn("failed to connect to audit database, falling back to in-memory audit sink")
		mem := audit.NewInMemorySink()
		return mem, mem, func() {}
	}

	gormSink, err := audit.NewGormSink(db.DB)
	if err != nil {
		log.WithError(err).Warn("failed to migrate audit schema, falling back to in-memory audit sink")
		db.Close()
		mem := audit.NewInMemorySink()
		return mem, mem, func() {}
	}

	return gormSink, nil, func() { db.Close() }
}

func setupRosterProvider(cfg *config.Config, log *logrus.Logger) roster.Provider {
	if cfg.RosterProviderURL == "" {
		log.Warn("no roster provider URL configured, using static balanced ratings for every team")
		return roster.NewStaticProvider(nil)
	}
	return roster.NewHTTPProvider(
		cfg.RosterProviderURL,
		cfg.CircuitBreakerThreshold,
		cfg.RosterProviderTimeout,
		logger.WithService("roster-provider"),
	)
}

func startArchetypeRefreshCron(cfg *config.Config, log *logrus.Logger, reload func()) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(cfg.ArchetypeRefreshCron, reload)
	if err != nil {
		log.WithError(err).Warn("invalid archetype refresh cron expression, periodic reload disabled")
		return c
	}
	c.Start()
	return c
}
