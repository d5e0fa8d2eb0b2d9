package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// HistoryService exposes read access to the recorded valuation history.
type HistoryService struct {
	historyRepo *repository.HistoryRepository
}

// NewHistoryService creates a new HistoryService with the provided repository dependency.
func NewHistoryService(historyRepo *repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// Range returns all history rows between start and end inclusive.
func (s *HistoryService) Range(ctx context.Context, start, end time.Time) ([]model.HistoryRow, error) {
	return s.historyRepo.GetRange(ctx, start, end)
}

// Day returns one date's history rows. A date with no snapshot is an
// ErrSnapshotNotFound, not an empty slice.
func (s *HistoryService) Day(ctx context.Context, date time.Time) ([]model.HistoryRow, error) {
	historyRows, err := s.historyRepo.GetDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveHistory, err)
	}
	if len(historyRows) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSnapshotNotFound, repository.FormatDate(date))
	}
	return historyRows, nil
}

// Ticker returns one ticker's full valuation series in ascending date order.
// The ticker is normalized before lookup; the TOTAL series is addressable too.
func (s *HistoryService) Ticker(ctx context.Context, ticker string) ([]model.HistoryRow, error) {
	if ticker != model.TickerTotal {
		normalized, err := validation.NormalizeTicker(ticker)
		if err != nil {
			return nil, err
		}
		ticker = normalized
	}
	return s.historyRepo.TickerHistory(ctx, ticker)
}
