package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/ruleone/internal/config"
	"github.com/aristath/ruleone/internal/database"
	"github.com/aristath/ruleone/internal/events"
	"github.com/aristath/ruleone/internal/modules/analysis"
	"github.com/aristath/ruleone/internal/modules/portfolio"
	"github.com/aristath/ruleone/internal/modules/universe"
	"github.com/aristath/ruleone/internal/scheduler"
	"github.com/aristath/ruleone/internal/server"
	"github.com/aristath/ruleone/pkg/logger"
)

func main() {
	// Load configuration first to get the log level
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Rule One analyzer")

	// Database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Repositories and services
	securityRepo := universe.NewSecurityRepository(db.Conn(), log)
	financialsRepo := universe.NewFinancialsRepository(db.Conn(), log)
	holdingRepo := portfolio.NewHoldingRepository(db.Conn(), log)
	snapshotRepo := analysis.NewSnapshotRepository(db.Conn(), log)

	analysisService := analysis.NewService(log)
	portfolioService := portfolio.NewService(holdingRepo, securityRepo, log)
	eventManager := events.NewManager(log)

	// Scheduler and the nightly valuation refresh
	tracker := scheduler.NewRefreshTracker()
	refreshJob := scheduler.NewValuationRefreshJob(scheduler.ValuationRefreshConfig{
		Log:        log,
		Securities: securityRepo,
		Financials: financialsRepo,
		Snapshots:  snapshotRepo,
		Service:    analysisService,
		Tracker:    tracker,
		Events:     eventManager,
	})

	sched := scheduler.New(log)
	if cfg.RefreshEnabled {
		if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:             cfg.Port,
		Log:              log,
		DevMode:          cfg.DevMode,
		UniverseHandler:  universe.NewHandler(securityRepo, financialsRepo, eventManager, log),
		AnalysisHandler:  analysis.NewHandler(analysisService, securityRepo, financialsRepo, snapshotRepo, eventManager, log),
		PortfolioHandler: portfolio.NewHandler(holdingRepo, portfolioService, log),
		RefreshTracker:   tracker,
		TriggerRefresh:   refreshJob.Run,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
