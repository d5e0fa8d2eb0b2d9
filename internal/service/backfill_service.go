package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/audit"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
)

// BackfillPolicy controls the synthetic-history generator for non-production
// environments. The generator no-ops when at least Days/ThresholdDivisor
// distinct historical dates already exist; otherwise it clears and
// regenerates everything except the current day's real rows.
type BackfillPolicy struct {
	Days             int
	ThresholdDivisor int
	Seed             int64
	Positions        []model.Position
	Prices           map[string]decimal.Decimal
	Cash             decimal.Decimal
}

// BackfillService generates deterministic synthetic valuation history so a
// fresh environment has enough data for charts and drawdown analysis.
type BackfillService struct {
	historyRepo *repository.HistoryRepository
	policy      BackfillPolicy
	auditLog    *audit.Logger
	now         func() time.Time
}

// NewBackfillService creates a new BackfillService with the provided dependencies.
func NewBackfillService(historyRepo *repository.HistoryRepository, policy BackfillPolicy, auditLog *audit.Logger, now func() time.Time) *BackfillService {
	if policy.ThresholdDivisor <= 0 {
		policy.ThresholdDivisor = 2
	}
	return &BackfillService{
		historyRepo: historyRepo,
		policy:      policy,
		auditLog:    auditLog,
		now:         now,
	}
}

// Run generates synthetic history for the configured number of days back.
// Returns the number of days generated; zero means enough history already
// existed. Today's rows are never touched.
func (s *BackfillService) Run(ctx context.Context) (int, error) {
	corrID := audit.NewCorrelationID()
	today := s.now().UTC().Truncate(24 * time.Hour)

	existing, err := s.historyRepo.CountHistoricalDays(ctx, today)
	if err != nil {
		return 0, err
	}
	if existing >= s.policy.Days/s.policy.ThresholdDivisor {
		return 0, nil
	}

	if err := s.historyRepo.DeleteAllExcept(ctx, today); err != nil {
		return 0, err
	}

	// Seeded generator: the same seed always reproduces the same history.
	rng := rand.New(rand.NewSource(s.policy.Seed))
	days := make(map[string][]model.HistoryRow, s.policy.Days)

	for i := s.policy.Days; i >= 1; i-- {
		date := today.AddDate(0, 0, -i)
		historyRows, err := s.generateDay(date, s.policy.Days-i, rng)
		if err != nil {
			return 0, err
		}
		days[repository.FormatDate(date)] = historyRows
	}

	if err := s.historyRepo.ReplaceDays(ctx, days); err != nil {
		return 0, err
	}

	s.auditLog.BackfillRun(corrID, s.policy.Days)
	return s.policy.Days, nil
}

// generateDay prices each base position with a mild upward trend plus seeded
// daily wobble, floored at half the buy price, then assembles the row set the
// same way a real snapshot would.
func (s *BackfillService) generateDay(date time.Time, daysFromStart int, rng *rand.Rand) ([]model.HistoryRow, error) {
	quotes := make(map[string]quote, len(s.policy.Positions))
	trend := decimal.NewFromInt(1).Add(decimal.NewFromFloat(0.02).Mul(decimal.NewFromInt(int64(daysFromStart))))

	for _, pos := range s.policy.Positions {
		base, ok := s.policy.Prices[pos.Ticker]
		if !ok {
			return nil, fmt.Errorf("%w: no base price for %s", apperrors.ErrPriceUnavailable, pos.Ticker)
		}
		wobble := decimal.NewFromFloat(0.85 + rng.Float64()*0.30)
		price := base.Mul(trend).Mul(wobble).Round(2)
		floor := pos.BuyPrice.Div(decimal.NewFromInt(2)).Round(2)
		if price.LessThan(floor) {
			price = floor
		}
		quotes[pos.Ticker] = quote{price: price}
	}

	return buildSnapshotRows(date, s.policy.Positions, quotes, nil, s.policy.Cash), nil
}
