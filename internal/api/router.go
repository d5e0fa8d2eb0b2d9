package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api/handlers"
	custommiddleware "github.com/tradejournal/Trading-Journal-Backend/internal/api/middleware"
	"github.com/tradejournal/Trading-Journal-Backend/internal/config"
	"github.com/tradejournal/Trading-Journal-Backend/internal/pricing"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Ledger    *service.LedgerService
	Snapshot  *service.SnapshotService
	Backfill  *service.BackfillService
	History   *service.HistoryService
	Analysis  *service.AnalysisService
	Overrides *pricing.Overrides
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/ledger", func(r chi.Router) {
			ledgerHandler := handlers.NewLedgerHandler(svc.Ledger)
			r.Get("/state", ledgerHandler.State)
			r.Get("/trades", ledgerHandler.TradeLog)
			r.Post("/buy", ledgerHandler.Buy)
			r.Post("/sell", ledgerHandler.Sell)
			r.Post("/deposit", ledgerHandler.Deposit)
		})

		r.Route("/snapshot", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot, svc.Backfill, time.Now)
			r.Post("/", snapshotHandler.Create)
			r.Post("/backfill", snapshotHandler.Backfill)
		})

		r.Route("/history", func(r chi.Router) {
			historyHandler := handlers.NewHistoryHandler(svc.History)
			r.Get("/", historyHandler.Range)
			r.Get("/export", historyHandler.ExportCSV)
			r.Get("/ticker/{ticker}", historyHandler.Ticker)
			r.Get("/{date}", historyHandler.Day)
		})

		r.Route("/pricing", func(r chi.Router) {
			pricingHandler := handlers.NewPricingHandler(svc.Overrides)
			r.Post("/override", pricingHandler.SetOverride)
			r.Get("/override/{ticker}", pricingHandler.GetOverride)
			r.Delete("/override/{ticker}", pricingHandler.ClearOverride)
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(svc.Analysis)
			r.Get("/cash", analysisHandler.CashAudit)
			r.Get("/drawdown", analysisHandler.Drawdown)
		})
	})

	return r
}
