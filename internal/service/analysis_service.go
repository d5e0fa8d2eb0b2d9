package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/analysis"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
)

// AnalysisService runs the pure audit analyzers against persisted data. It
// never consults the live cash balance; the point of the cash audit is to
// detect drift between the trade log and what snapshots recorded.
type AnalysisService struct {
	ledgerRepo  *repository.LedgerRepository
	historyRepo *repository.HistoryRepository
	initialCash decimal.Decimal
}

// NewAnalysisService creates a new AnalysisService with the provided dependencies.
// initialCash is the configured opening balance the trade log replays from.
func NewAnalysisService(ledgerRepo *repository.LedgerRepository, historyRepo *repository.HistoryRepository, initialCash decimal.Decimal) *AnalysisService {
	return &AnalysisService{
		ledgerRepo:  ledgerRepo,
		historyRepo: historyRepo,
		initialCash: initialCash,
	}
}

// CashReport is the result of a cash-reconstruction audit.
type CashReport struct {
	InitialCash decimal.Decimal      `json:"initialCash"`
	Balances    []analysis.DailyCash `json:"balances"`
	Drifts      []analysis.CashDrift `json:"drifts"`
	Consistent  bool                 `json:"consistent"`
}

// ReconstructCash replays the trade log and cross-checks the result against
// the stored TOTAL rows.
func (s *AnalysisService) ReconstructCash(ctx context.Context) (CashReport, error) {
	entries, err := s.ledgerRepo.TradeLog(ctx)
	if err != nil {
		return CashReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTradeLog, err)
	}
	totals, err := s.historyRepo.Totals(ctx)
	if err != nil {
		return CashReport{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveHistory, err)
	}

	balances := analysis.ReconstructCash(entries, s.initialCash)
	drifts := analysis.AuditCash(entries, s.initialCash, totals)

	return CashReport{
		InitialCash: s.initialCash,
		Balances:    balances,
		Drifts:      drifts,
		Consistent:  len(drifts) == 0,
	}, nil
}

// Drawdown computes per-ticker drawdown series and maxima over the full
// valuation history.
func (s *AnalysisService) Drawdown(ctx context.Context) (map[string]analysis.TickerDrawdown, error) {
	tickers, err := s.historyRepo.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveHistory, err)
	}

	result := make(map[string]analysis.TickerDrawdown, len(tickers))
	for _, ticker := range tickers {
		historyRows, err := s.historyRepo.TickerHistory(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveHistory, err)
		}
		for t, dd := range analysis.DrawdownByTicker(historyRows) {
			result[t] = dd
		}
	}
	return result, nil
}
