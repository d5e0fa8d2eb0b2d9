package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/audit"
	"github.com/tradejournal/Trading-Journal-Backend/internal/calendar"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/pricing"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
)

// SnapshotService produces one consistent valuation row set per eligible
// date: one row per held ticker plus the TOTAL aggregate. Snapshots are
// idempotent per date; re-running replaces the date's rows.
type SnapshotService struct {
	ledgerRepo  *repository.LedgerRepository
	historyRepo *repository.HistoryRepository
	tradingCal  *calendar.TradingCalendar
	prices      pricing.Source
	auditLog    *audit.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	ledgerRepo *repository.LedgerRepository,
	historyRepo *repository.HistoryRepository,
	tradingCal *calendar.TradingCalendar,
	prices pricing.Source,
	auditLog *audit.Logger,
) *SnapshotService {
	return &SnapshotService{
		ledgerRepo:  ledgerRepo,
		historyRepo: historyRepo,
		tradingCal:  tradingCal,
		prices:      prices,
		auditLog:    auditLog,
	}
}

// SnapshotResult reports the outcome of a snapshot request. Skipped means the
// trading calendar rejected the date and nothing was written.
type SnapshotResult struct {
	Date    time.Time          `json:"date"`
	Skipped bool               `json:"skipped"`
	Rows    []model.HistoryRow `json:"rows,omitempty"`
}

// CreateSnapshot values every held position at the given date and replaces
// the date's history rows atomically. Non-trading days are skipped, not
// errors, unless force is set. A ticker without an available price is written
// with zero value and the NO PRICE action rather than silently zeroed into
// the valuation.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, date time.Time, force bool) (SnapshotResult, error) {
	corrID := audit.NewCorrelationID()

	if !force && !s.tradingCal.IsTradingDay(date) {
		s.auditLog.SnapshotSkipped(corrID, date)
		return SnapshotResult{Date: date, Skipped: true}, nil
	}

	if s.prices == nil {
		return SnapshotResult{}, apperrors.ErrNoPriceSource
	}

	state, err := s.ledgerRepo.LoadState(ctx)
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSnapshot, err)
	}

	quotes, err := s.resolvePrices(ctx, date, state.Positions)
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSnapshot, err)
	}

	actions, err := s.sameDayActions(ctx, date)
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToCreateSnapshot, err)
	}

	historyRows := buildSnapshotRows(date, state.Positions, quotes, actions, state.Cash)

	if err := s.historyRepo.ReplaceDay(ctx, date, historyRows); err != nil {
		return SnapshotResult{}, err
	}

	total := historyRows[len(historyRows)-1]
	s.auditLog.SnapshotCreated(corrID, date, len(historyRows), total.TotalEquity)
	return SnapshotResult{Date: date, Rows: historyRows}, nil
}

// quote carries a resolved price, or marks the ticker unpriced for the date.
type quote struct {
	price       decimal.Decimal
	unavailable bool
}

// resolvePrices fetches all prices concurrently. Unavailability is a
// per-ticker outcome, not an error; anything else from the source aborts the
// snapshot.
func (s *SnapshotService) resolvePrices(ctx context.Context, date time.Time, positions []model.Position) (map[string]quote, error) {
	quotes := make([]quote, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	for i, pos := range positions {
		i, pos := i, pos
		g.Go(func() error {
			price, err := s.prices.Price(gctx, pos.Ticker, date)
			if errors.Is(err, apperrors.ErrPriceUnavailable) {
				quotes[i] = quote{unavailable: true}
				return nil
			}
			if err != nil {
				return fmt.Errorf("price lookup for %s: %w", pos.Ticker, err)
			}
			quotes[i] = quote{price: price}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byTicker := make(map[string]quote, len(positions))
	for i, pos := range positions {
		byTicker[pos.Ticker] = quotes[i]
	}
	return byTicker, nil
}

// sameDayActions maps tickers traded on the snapshot date to BUY or SELL so
// the day's rows reflect the trade instead of HOLD. The last entry of the day
// wins.
func (s *SnapshotService) sameDayActions(ctx context.Context, date time.Time) (map[string]string, error) {
	entries, err := s.ledgerRepo.TradesOn(ctx, date)
	if err != nil {
		return nil, err
	}

	actions := make(map[string]string, len(entries))
	for _, e := range entries {
		switch {
		case e.IsBuy():
			actions[e.Ticker] = model.ActionBuy
		case e.IsSell():
			actions[e.Ticker] = model.ActionSell
		}
	}
	return actions, nil
}

// buildSnapshotRows computes the per-ticker rows and synthesizes the TOTAL
// row last: total_value and pnl are the sums of the per-ticker rows, and
// total_equity = total_value + cash, so the date's rows always satisfy the
// aggregate invariants by construction.
func buildSnapshotRows(date time.Time, positions []model.Position, quotes map[string]quote, actions map[string]string, cash decimal.Decimal) []model.HistoryRow {
	sorted := make([]model.Position, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ticker < sorted[j].Ticker })

	historyRows := make([]model.HistoryRow, 0, len(sorted)+1)
	totalValue := decimal.Zero
	totalPnL := decimal.Zero

	for _, pos := range sorted {
		q := quotes[pos.Ticker]
		row := model.HistoryRow{
			Date:      date,
			Ticker:    pos.Ticker,
			Shares:    pos.Shares,
			CostBasis: pos.CostBasis,
			StopLoss:  pos.StopLoss,
		}

		if q.unavailable {
			row.Action = model.ActionNoPrice
		} else {
			shares := decimal.NewFromInt(pos.Shares)
			row.CurrentPrice = q.price
			row.TotalValue = q.price.Mul(shares).Round(2)
			row.PnL = q.price.Sub(pos.BuyPrice).Mul(shares).Round(2)
			row.Action = model.ActionHold
			if action, ok := actions[pos.Ticker]; ok {
				row.Action = action
			}
			totalValue = totalValue.Add(row.TotalValue)
			totalPnL = totalPnL.Add(row.PnL)
		}

		historyRows = append(historyRows, row)
	}

	historyRows = append(historyRows, model.HistoryRow{
		Date:        date,
		Ticker:      model.TickerTotal,
		TotalValue:  totalValue,
		PnL:         totalPnL,
		CashBalance: cash.Round(2),
		TotalEquity: totalValue.Add(cash.Round(2)),
	})
	return historyRows
}
