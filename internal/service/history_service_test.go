package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/testutil"
)

// TestHistoryService_Day tests single-date reads.
func TestHistoryService_Day(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	historyRepo := repository.NewHistoryRepository(db)
	svc := testutil.NewTestHistoryService(t, db)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []model.HistoryRow{
		{Date: date, Ticker: "AAPL", TotalValue: testutil.Money(t, "5000")},
		{Date: date, Ticker: model.TickerTotal, TotalValue: testutil.Money(t, "5000")},
	}
	if err := historyRepo.ReplaceDay(ctx, date, rows); err != nil {
		t.Fatalf("ReplaceDay() returned unexpected error: %v", err)
	}

	t.Run("returns the date's rows with TOTAL last", func(t *testing.T) {
		got, err := svc.Day(ctx, date)
		if err != nil {
			t.Fatalf("Day() returned unexpected error: %v", err)
		}
		if len(got) != 2 || !got[1].IsTotal() {
			t.Errorf("Expected 2 rows with TOTAL last, got %v", got)
		}
	})

	t.Run("reports a missing snapshot as not found", func(t *testing.T) {
		_, err := svc.Day(ctx, date.AddDate(0, 0, 1))
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})
}

// TestHistoryService_Ticker tests per-ticker reads and normalization.
func TestHistoryService_Ticker(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	historyRepo := repository.NewHistoryRepository(db)
	svc := testutil.NewTestHistoryService(t, db)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []model.HistoryRow{
		{Date: date, Ticker: "AAPL", TotalValue: testutil.Money(t, "5000")},
		{Date: date, Ticker: model.TickerTotal, TotalValue: testutil.Money(t, "5000")},
	}
	if err := historyRepo.ReplaceDay(ctx, date, rows); err != nil {
		t.Fatalf("ReplaceDay() returned unexpected error: %v", err)
	}

	t.Run("normalizes the ticker before lookup", func(t *testing.T) {
		got, err := svc.Ticker(ctx, " aapl ")
		if err != nil {
			t.Fatalf("Ticker() returned unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Ticker != "AAPL" {
			t.Errorf("Expected one AAPL row, got %v", got)
		}
	})

	t.Run("serves the TOTAL series", func(t *testing.T) {
		got, err := svc.Ticker(ctx, model.TickerTotal)
		if err != nil {
			t.Fatalf("Ticker() returned unexpected error: %v", err)
		}
		if len(got) != 1 || !got[0].IsTotal() {
			t.Errorf("Expected the TOTAL series, got %v", got)
		}
	})

	t.Run("rejects a malformed ticker", func(t *testing.T) {
		if _, err := svc.Ticker(ctx, "123"); !errors.Is(err, apperrors.ErrInvalidTicker) {
			t.Errorf("Expected ErrInvalidTicker, got %v", err)
		}
	})
}
