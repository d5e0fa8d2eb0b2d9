package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api"
	"github.com/tradejournal/Trading-Journal-Backend/internal/audit"
	"github.com/tradejournal/Trading-Journal-Backend/internal/calendar"
	"github.com/tradejournal/Trading-Journal-Backend/internal/config"
	"github.com/tradejournal/Trading-Journal-Backend/internal/database"
	"github.com/tradejournal/Trading-Journal-Backend/internal/pricing"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/scheduler"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := newLogger(cfg)

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Create repositories
	ledgerRepo := repository.NewLedgerRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	auditLog := audit.New(log)
	tradingCal := calendar.New(cfg.Market.Holidays)

	// Manual price overrides are the configured price source; tickers without
	// an override snapshot as NO PRICE rows.
	overrides := pricing.NewOverrides()
	prices := &pricing.OverrideSource{Overrides: overrides}

	// Create services
	systemService := service.NewSystemService(db)
	ledgerService := service.NewLedgerService(ledgerRepo, auditLog, time.Now)
	snapshotService := service.NewSnapshotService(ledgerRepo, historyRepo, tradingCal, prices, auditLog)
	historyService := service.NewHistoryService(historyRepo)
	analysisService := service.NewAnalysisService(ledgerRepo, historyRepo, cfg.Ledger.InitialCash)

	ctx := context.Background()

	state, err := ledgerRepo.LoadState(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger state")
	}
	if state.IsFirstTime {
		if _, err := ledgerRepo.AdjustCash(ctx, cfg.Ledger.InitialCash); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed initial cash")
		}
		log.Info().Str("amount", cfg.Ledger.InitialCash.StringFixed(2)).Msg("Seeded initial cash balance")
		state, err = ledgerRepo.LoadState(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reload ledger state")
		}
	}

	// Synthetic history uses the held positions at their buy prices as the
	// generator baseline.
	basePrices := make(map[string]decimal.Decimal, len(state.Positions))
	for _, pos := range state.Positions {
		basePrices[pos.Ticker] = pos.BuyPrice
	}
	backfillService := service.NewBackfillService(historyRepo, service.BackfillPolicy{
		Days:             cfg.Backfill.Days,
		ThresholdDivisor: cfg.Backfill.ThresholdDivisor,
		Seed:             cfg.Backfill.Seed,
		Positions:        state.Positions,
		Prices:           basePrices,
		Cash:             state.Cash,
	}, auditLog, time.Now)

	if cfg.IsDevStage() && len(state.Positions) > 0 {
		days, err := backfillService.Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to backfill history")
		}
		if days > 0 {
			log.Info().Int("days", days).Msg("Generated synthetic history")
		}
	}

	// Daily snapshot job
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.Market.SnapshotSchedule, scheduler.NewSnapshotJob(snapshotService, time.Now)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule snapshot job")
	}
	sched.Start()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Ledger:    ledgerService,
		Snapshot:  snapshotService,
		Backfill:  backfillService,
		History:   historyService,
		Analysis:  analysisService,
		Overrides: overrides,
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	sched.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newLogger builds the process logger: human-readable console output in dev,
// JSON everywhere else.
func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevStage() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
