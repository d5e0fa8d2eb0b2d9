package analysis_test

import (
	"testing"

	"github.com/tradejournal/Trading-Journal-Backend/internal/analysis"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

func valueRow(date, ticker, totalValue string) model.HistoryRow {
	return model.HistoryRow{
		Date:       day(date),
		Ticker:     ticker,
		TotalValue: money(totalValue),
	}
}

// TestComputeDrawdown tests the running-peak decline series.
//
// WHY: Drawdown is the headline risk number of the journal. The peak must
// never decrease and the percentage must be measured against the peak at the
// time, not the series maximum.
func TestComputeDrawdown(t *testing.T) {
	t.Run("tracks the running peak", func(t *testing.T) {
		rows := []model.HistoryRow{
			valueRow("2026-01-05", "AAPL", "100"),
			valueRow("2026-01-06", "AAPL", "120"),
			valueRow("2026-01-07", "AAPL", "90"),
			valueRow("2026-01-08", "AAPL", "110"),
		}

		points := analysis.ComputeDrawdown(rows)
		if len(points) != 4 {
			t.Fatalf("Expected 4 points, got %d", len(points))
		}

		wantPct := []string{"0", "0", "-25", "-8.33"}
		wantAbs := []string{"0", "0", "-30", "-10"}
		for i := range points {
			if !points[i].DrawdownPct.Equal(money(wantPct[i])) {
				t.Errorf("points[%d].DrawdownPct = %s, want %s", i, points[i].DrawdownPct, wantPct[i])
			}
			if !points[i].DrawdownAbs.Equal(money(wantAbs[i])) {
				t.Errorf("points[%d].DrawdownAbs = %s, want %s", i, points[i].DrawdownAbs, wantAbs[i])
			}
		}
		if !points[3].Peak.Equal(money("120")) {
			t.Errorf("Expected final peak 120, got %s", points[3].Peak)
		}
	})

	t.Run("sorts rows by date before walking", func(t *testing.T) {
		rows := []model.HistoryRow{
			valueRow("2026-01-07", "AAPL", "90"),
			valueRow("2026-01-05", "AAPL", "100"),
			valueRow("2026-01-06", "AAPL", "120"),
		}

		points := analysis.ComputeDrawdown(rows)
		if !points[2].DrawdownPct.Equal(money("-25")) {
			t.Errorf("Expected last point at -25%%, got %s", points[2].DrawdownPct)
		}
	})

	t.Run("returns an empty series for no rows", func(t *testing.T) {
		if points := analysis.ComputeDrawdown(nil); len(points) != 0 {
			t.Errorf("Expected empty series, got %d points", len(points))
		}
	})

	t.Run("reports zero percent when the peak is zero", func(t *testing.T) {
		points := analysis.ComputeDrawdown([]model.HistoryRow{valueRow("2026-01-05", "AAPL", "0")})
		if !points[0].DrawdownPct.IsZero() {
			t.Errorf("Expected 0%% at zero peak, got %s", points[0].DrawdownPct)
		}
	})
}

// TestMaxDrawdownPct tests selection of the worst decline.
func TestMaxDrawdownPct(t *testing.T) {
	rows := []model.HistoryRow{
		valueRow("2026-01-05", "AAPL", "100"),
		valueRow("2026-01-06", "AAPL", "80"),
		valueRow("2026-01-07", "AAPL", "95"),
		valueRow("2026-01-08", "AAPL", "60"),
	}

	got := analysis.MaxDrawdownPct(analysis.ComputeDrawdown(rows))
	if !got.Equal(money("-40")) {
		t.Errorf("MaxDrawdownPct = %s, want -40", got)
	}

	if got := analysis.MaxDrawdownPct(nil); !got.IsZero() {
		t.Errorf("MaxDrawdownPct(nil) = %s, want 0", got)
	}
}

// TestDrawdownByTicker tests grouping, TOTAL exclusion and the handling of
// unpriced days.
func TestDrawdownByTicker(t *testing.T) {
	t.Run("skips NO PRICE rows", func(t *testing.T) {
		// An unpriced day stores zero total_value; counting it as a real
		// valuation would report a -100% collapse and a false recovery.
		unpriced := valueRow("2026-01-06", "AAPL", "0")
		unpriced.Action = model.ActionNoPrice
		rows := []model.HistoryRow{
			valueRow("2026-01-05", "AAPL", "100"),
			unpriced,
			valueRow("2026-01-07", "AAPL", "110"),
		}

		result := analysis.DrawdownByTicker(rows)

		dd := result["AAPL"]
		if len(dd.Points) != 2 {
			t.Fatalf("Expected 2 points after dropping the unpriced day, got %d", len(dd.Points))
		}
		if !dd.MaxDrawdownPct.IsZero() {
			t.Errorf("MaxDrawdownPct = %s, want 0", dd.MaxDrawdownPct)
		}
	})

	t.Run("measures real declines across an unpriced gap", func(t *testing.T) {
		unpriced := valueRow("2026-01-06", "AAPL", "0")
		unpriced.Action = model.ActionNoPrice
		rows := []model.HistoryRow{
			valueRow("2026-01-05", "AAPL", "100"),
			unpriced,
			valueRow("2026-01-07", "AAPL", "80"),
		}

		result := analysis.DrawdownByTicker(rows)

		if !result["AAPL"].MaxDrawdownPct.Equal(money("-20")) {
			t.Errorf("MaxDrawdownPct = %s, want -20", result["AAPL"].MaxDrawdownPct)
		}
	})

	rows := []model.HistoryRow{
		valueRow("2026-01-05", "AAPL", "100"),
		valueRow("2026-01-06", "AAPL", "50"),
		valueRow("2026-01-05", "MSFT", "200"),
		valueRow("2026-01-06", "MSFT", "220"),
		valueRow("2026-01-05", model.TickerTotal, "300"),
	}

	result := analysis.DrawdownByTicker(rows)

	if len(result) != 2 {
		t.Fatalf("Expected 2 tickers, got %d", len(result))
	}
	if _, ok := result[model.TickerTotal]; ok {
		t.Error("TOTAL rows must be excluded from per-ticker drawdown")
	}
	if !result["AAPL"].MaxDrawdownPct.Equal(money("-50")) {
		t.Errorf("AAPL MaxDrawdownPct = %s, want -50", result["AAPL"].MaxDrawdownPct)
	}
	if !result["MSFT"].MaxDrawdownPct.IsZero() {
		t.Errorf("MSFT MaxDrawdownPct = %s, want 0", result["MSFT"].MaxDrawdownPct)
	}
	if !result["AAPL"].MaxDrawdownAbs.Equal(money("-50")) {
		t.Errorf("AAPL MaxDrawdownAbs = %s, want -50", result["AAPL"].MaxDrawdownAbs)
	}
}
