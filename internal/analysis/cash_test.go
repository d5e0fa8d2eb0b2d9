package analysis_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/analysis"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buyEntry(id int64, date string, ticker string, shares int64, price string) model.TradeLogEntry {
	return model.TradeLogEntry{
		ID:           id,
		Date:         day(date),
		Ticker:       ticker,
		SharesBought: shares,
		BuyPrice:     money(price),
		CostBasis:    money(price).Mul(decimal.NewFromInt(shares)),
	}
}

func sellEntry(id int64, date string, ticker string, shares int64, price string) model.TradeLogEntry {
	return model.TradeLogEntry{
		ID:         id,
		Date:       day(date),
		Ticker:     ticker,
		SharesSold: shares,
		SellPrice:  money(price),
	}
}

func depositEntry(id int64, date string, amount string) model.TradeLogEntry {
	return model.TradeLogEntry{
		ID:      id,
		Date:    day(date),
		Ticker:  model.TickerCash,
		Reason:  "DEPOSIT",
		Deposit: money(amount),
	}
}

// TestReconstructCash tests trade-log replay from an initial balance.
//
// WHY: The replayed series is the independent ground truth the cash audit
// compares stored snapshots against. It must match the ledger's own
// arithmetic exactly, including multiple trades on one date.
func TestReconstructCash(t *testing.T) {
	t.Run("returns no balances for an empty log", func(t *testing.T) {
		balances := analysis.ReconstructCash(nil, money("10000"))
		if len(balances) != 0 {
			t.Errorf("Expected no balances, got %d", len(balances))
		}
	})

	t.Run("replays buys and sells in date order", func(t *testing.T) {
		entries := []model.TradeLogEntry{
			// Deliberately out of order; replay must sort by date then id.
			sellEntry(3, "2026-01-07", "AAPL", 150, "70"),
			buyEntry(1, "2026-01-05", "AAPL", 100, "50"),
			buyEntry(2, "2026-01-06", "AAPL", 50, "60"),
		}

		balances := analysis.ReconstructCash(entries, money("10000"))

		want := []struct {
			date    string
			balance string
		}{
			{"2026-01-05", "5000"},
			{"2026-01-06", "2000"},
			{"2026-01-07", "12500"},
		}
		if len(balances) != len(want) {
			t.Fatalf("Expected %d balances, got %d", len(want), len(balances))
		}
		for i, w := range want {
			if !balances[i].Date.Equal(day(w.date)) {
				t.Errorf("balances[%d].Date = %s, want %s", i, balances[i].Date, w.date)
			}
			if !balances[i].Balance.Equal(money(w.balance)) {
				t.Errorf("balances[%d].Balance = %s, want %s", i, balances[i].Balance, w.balance)
			}
		}
	})

	t.Run("replays deposits alongside trades", func(t *testing.T) {
		entries := []model.TradeLogEntry{
			buyEntry(1, "2026-01-05", "AAPL", 100, "50"),
			depositEntry(2, "2026-01-06", "2500"),
		}

		balances := analysis.ReconstructCash(entries, money("10000"))

		if len(balances) != 2 {
			t.Fatalf("Expected 2 balances, got %d", len(balances))
		}
		if !balances[1].Balance.Equal(money("7500")) {
			t.Errorf("Expected balance 7500 after deposit, got %s", balances[1].Balance)
		}
	})

	t.Run("collapses same-date trades into one balance", func(t *testing.T) {
		entries := []model.TradeLogEntry{
			buyEntry(1, "2026-01-05", "AAPL", 100, "50"),
			buyEntry(2, "2026-01-05", "MSFT", 10, "100"),
		}

		balances := analysis.ReconstructCash(entries, money("10000"))

		if len(balances) != 1 {
			t.Fatalf("Expected 1 balance, got %d", len(balances))
		}
		if !balances[0].Balance.Equal(money("4000")) {
			t.Errorf("Expected end-of-day balance 4000, got %s", balances[0].Balance)
		}
	})
}

// TestAuditCash tests drift detection between replayed and stored balances.
func TestAuditCash(t *testing.T) {
	entries := []model.TradeLogEntry{
		buyEntry(1, "2026-01-05", "AAPL", 100, "50"),
	}

	totalRow := func(date, cash string) model.HistoryRow {
		return model.HistoryRow{
			Date:        day(date),
			Ticker:      model.TickerTotal,
			CashBalance: money(cash),
		}
	}

	t.Run("reports no drift when stored matches replay", func(t *testing.T) {
		totals := []model.HistoryRow{
			totalRow("2026-01-05", "5000"),
			totalRow("2026-01-06", "5000"),
		}

		drifts := analysis.AuditCash(entries, money("10000"), totals)
		if len(drifts) != 0 {
			t.Errorf("Expected no drift, got %v", drifts)
		}
	})

	t.Run("reports drift with stored minus replayed sign", func(t *testing.T) {
		totals := []model.HistoryRow{totalRow("2026-01-06", "4800")}

		drifts := analysis.AuditCash(entries, money("10000"), totals)
		if len(drifts) != 1 {
			t.Fatalf("Expected 1 drift, got %d", len(drifts))
		}
		if !drifts[0].Drift.Equal(money("-200")) {
			t.Errorf("Expected drift -200, got %s", drifts[0].Drift)
		}
		if !drifts[0].Replayed.Equal(money("5000")) {
			t.Errorf("Expected replayed 5000, got %s", drifts[0].Replayed)
		}
	})

	t.Run("compares a TOTAL row before any trades against the initial balance", func(t *testing.T) {
		totals := []model.HistoryRow{totalRow("2026-01-02", "10000")}

		drifts := analysis.AuditCash(entries, money("10000"), totals)
		if len(drifts) != 0 {
			t.Errorf("Expected no drift before first trade, got %v", drifts)
		}
	})

	t.Run("stays consistent across a logged deposit", func(t *testing.T) {
		// A deposit is a legitimate cash movement, not corruption; once it is
		// in the log, snapshots taken after it must not register as drift.
		withDeposit := []model.TradeLogEntry{
			buyEntry(1, "2026-01-05", "AAPL", 100, "50"),
			depositEntry(2, "2026-01-06", "2500"),
		}
		totals := []model.HistoryRow{
			totalRow("2026-01-05", "5000"),
			totalRow("2026-01-06", "7500"),
		}

		drifts := analysis.AuditCash(withDeposit, money("10000"), totals)
		if len(drifts) != 0 {
			t.Errorf("Expected no drift after logged deposit, got %v", drifts)
		}
	})

	t.Run("ignores non-TOTAL rows", func(t *testing.T) {
		totals := []model.HistoryRow{{
			Date:        day("2026-01-05"),
			Ticker:      "AAPL",
			CashBalance: money("123"),
		}}

		drifts := analysis.AuditCash(entries, money("10000"), totals)
		if len(drifts) != 0 {
			t.Errorf("Expected ticker rows to be ignored, got %v", drifts)
		}
	})
}
