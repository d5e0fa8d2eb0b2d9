package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/analysis"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/testutil"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

func noStopLoss() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

// TestLedgerService_TradeLifecycle walks a full buy/merge/liquidate sequence.
//
// WHY: This is the canonical journal scenario; every number is checked
// end-to-end, and the trade log must replay to the same cash balance the
// ledger reports.
func TestLedgerService_TradeLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestLedgerService(t, db, "2026-01-05")
	testutil.SeedCash(t, db, "10000")

	// Buy 100 @ 50
	buy1, err := svc.Buy(ctx, "AAPL", 100, testutil.Money(t, "50"), noStopLoss())
	if err != nil {
		t.Fatalf("first Buy() returned unexpected error: %v", err)
	}
	if !buy1.Cash.Equal(testutil.Money(t, "5000")) {
		t.Errorf("Expected cash 5000 after first buy, got %s", buy1.Cash)
	}

	// Buy 50 @ 60 merges to 150 shares @ 53.33
	buy2, err := svc.Buy(ctx, "aapl", 50, testutil.Money(t, "60"), noStopLoss())
	if err != nil {
		t.Fatalf("second Buy() returned unexpected error: %v", err)
	}
	if buy2.Position.Shares != 150 {
		t.Errorf("Expected 150 shares, got %d", buy2.Position.Shares)
	}
	if !buy2.Position.BuyPrice.Equal(testutil.Money(t, "53.33")) {
		t.Errorf("Expected weighted buy price 53.33, got %s", buy2.Position.BuyPrice)
	}
	if !buy2.Cash.Equal(testutil.Money(t, "2000")) {
		t.Errorf("Expected cash 2000 after second buy, got %s", buy2.Cash)
	}

	// Sell everything @ 70
	sellResult, err := svc.Sell(ctx, "AAPL", 150, testutil.Money(t, "70"), "")
	if err != nil {
		t.Fatalf("Sell() returned unexpected error: %v", err)
	}
	if sellResult.Position != nil {
		t.Errorf("Expected position liquidated, got %+v", sellResult.Position)
	}
	if !sellResult.PnL.Equal(testutil.Money(t, "2500.50")) {
		t.Errorf("Expected pnl 2500.50, got %s", sellResult.PnL)
	}
	if !sellResult.Cash.Equal(testutil.Money(t, "12500")) {
		t.Errorf("Expected cash 12500, got %s", sellResult.Cash)
	}
	if sellResult.Entry.Reason != "MANUAL SELL" {
		t.Errorf("Expected default sell reason, got %q", sellResult.Entry.Reason)
	}

	// The trade log replays to the same balance the ledger reports.
	entries, err := svc.TradeLog(ctx)
	if err != nil {
		t.Fatalf("TradeLog() returned unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 trade log entries, got %d", len(entries))
	}
	balances := analysis.ReconstructCash(entries, testutil.Money(t, "10000"))
	final := balances[len(balances)-1].Balance
	if !final.Equal(testutil.Money(t, "12500")) {
		t.Errorf("Replayed balance %s disagrees with ledger cash 12500", final)
	}

	state, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State() returned unexpected error: %v", err)
	}
	if len(state.Positions) != 0 {
		t.Errorf("Expected no open positions, got %d", len(state.Positions))
	}
	if !state.Cash.Equal(final) {
		t.Errorf("State cash %s disagrees with replayed balance %s", state.Cash, final)
	}
}

// TestLedgerService_Validation tests that invalid orders never reach the ledger.
func TestLedgerService_Validation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestLedgerService(t, db, "2026-01-05")
	testutil.SeedCash(t, db, "10000")

	t.Run("rejects a malformed buy", func(t *testing.T) {
		_, err := svc.Buy(ctx, "123", -1, decimal.Zero, noStopLoss())

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}

		entries, err := svc.TradeLog(ctx)
		if err != nil {
			t.Fatalf("TradeLog() returned unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected empty trade log after rejected buy, got %d entries", len(entries))
		}
	})

	t.Run("rejects a malformed sell", func(t *testing.T) {
		_, err := svc.Sell(ctx, "AAPL", 0, testutil.Money(t, "70"), "")
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}
	})

	t.Run("rejects a non-positive deposit", func(t *testing.T) {
		if _, err := svc.Deposit(ctx, decimal.Zero); !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})
}

// TestLedgerService_Deposit tests the cash deposit path.
//
// WHY: A deposit that only moved the balance would be indistinguishable from
// corruption when the trade log is replayed. It has to land in the log too.
func TestLedgerService_Deposit(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestLedgerService(t, db, "2026-01-05")
	testutil.SeedCash(t, db, "1000")

	balance, err := svc.Deposit(ctx, testutil.Money(t, "250.25"))
	if err != nil {
		t.Fatalf("Deposit() returned unexpected error: %v", err)
	}
	if !balance.Equal(testutil.Money(t, "1250.25")) {
		t.Errorf("Expected balance 1250.25, got %s", balance)
	}

	entries, err := svc.TradeLog(ctx)
	if err != nil {
		t.Fatalf("TradeLog() returned unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if !entry.IsDeposit() || !entry.Deposit.Equal(testutil.Money(t, "250.25")) {
		t.Errorf("Expected deposit entry of 250.25, got %+v", entry)
	}
	if entry.Ticker != model.TickerCash {
		t.Errorf("Expected ticker %s, got %q", model.TickerCash, entry.Ticker)
	}
	if entry.Reason != "DEPOSIT" {
		t.Errorf("Expected reason DEPOSIT, got %q", entry.Reason)
	}
}
