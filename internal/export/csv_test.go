package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/export"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// TestWriteHistoryCSV tests the CSV rendering of valuation rows.
func TestWriteHistoryCSV(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	rows := []model.HistoryRow{
		{
			Date:         date,
			Ticker:       "AAPL",
			Shares:       150,
			CostBasis:    decimal.RequireFromString("7999.50"),
			StopLoss:     decimal.NullDecimal{Decimal: decimal.RequireFromString("45"), Valid: true},
			CurrentPrice: decimal.RequireFromString("60"),
			TotalValue:   decimal.RequireFromString("9000"),
			PnL:          decimal.RequireFromString("1000.50"),
			Action:       model.ActionHold,
		},
		{
			Date:        date,
			Ticker:      model.TickerTotal,
			TotalValue:  decimal.RequireFromString("9000"),
			PnL:         decimal.RequireFromString("1000.50"),
			CashBalance: decimal.RequireFromString("2000"),
			TotalEquity: decimal.RequireFromString("11000"),
		},
	}

	var sb strings.Builder
	if err := export.WriteHistoryCSV(&sb, rows); err != nil {
		t.Fatalf("WriteHistoryCSV() returned unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "date,ticker,shares,cost_basis,stop_loss,current_price,total_value,pnl,action,cash_balance,total_equity" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "2026-01-05,AAPL,150,7999.50,45,60,9000,1000.50,HOLD,0,0" {
		t.Errorf("Unexpected AAPL row: %s", lines[1])
	}
	if lines[2] != "2026-01-05,TOTAL,0,0,,0,9000,1000.50,,2000,11000" {
		t.Errorf("Unexpected TOTAL row: %s", lines[2])
	}
}

// TestWriteHistoryCSV_Empty tests header-only output for no rows.
func TestWriteHistoryCSV_Empty(t *testing.T) {
	var sb strings.Builder
	if err := export.WriteHistoryCSV(&sb, nil); err != nil {
		t.Fatalf("WriteHistoryCSV() returned unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected header only, got %d lines", len(lines))
	}
}
