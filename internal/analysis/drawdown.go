package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// DrawdownPoint is one valuation with its running peak and decline from it.
// DrawdownAbs is always <= 0; DrawdownPct is DrawdownAbs/Peak*100 rounded to
// two places.
type DrawdownPoint struct {
	Date        time.Time       `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Peak        decimal.Decimal `json:"peak"`
	DrawdownAbs decimal.Decimal `json:"drawdownAbs"`
	DrawdownPct decimal.Decimal `json:"drawdownPct"`
}

// TickerDrawdown summarizes the worst decline of one ticker's history.
type TickerDrawdown struct {
	Ticker         string          `json:"ticker"`
	MaxDrawdownPct decimal.Decimal `json:"maxDrawdownPct"`
	MaxDrawdownAbs decimal.Decimal `json:"maxDrawdownAbs"`
	Points         []DrawdownPoint `json:"points,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// ComputeDrawdown walks valuation rows in ascending date order tracking the
// running maximum of total_value: peak[i] = max(value[0..i]),
// drawdown_abs[i] = value[i] - peak[i].
func ComputeDrawdown(historyRows []model.HistoryRow) []DrawdownPoint {
	sorted := make([]model.HistoryRow, len(historyRows))
	copy(sorted, historyRows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]DrawdownPoint, 0, len(sorted))
	var peak decimal.Decimal
	for i, row := range sorted {
		if i == 0 || row.TotalValue.GreaterThan(peak) {
			peak = row.TotalValue
		}
		abs := row.TotalValue.Sub(peak)
		pct := decimal.Zero
		if peak.Sign() > 0 {
			pct = abs.Div(peak).Mul(hundred).Round(2)
		}
		points = append(points, DrawdownPoint{
			Date:        row.Date,
			Value:       row.TotalValue,
			Peak:        peak,
			DrawdownAbs: abs,
			DrawdownPct: pct,
		})
	}
	return points
}

// MaxDrawdownPct returns the most negative percentage drawdown in the series,
// or zero for an empty series.
func MaxDrawdownPct(points []DrawdownPoint) decimal.Decimal {
	minPct := decimal.Zero
	for _, p := range points {
		if p.DrawdownPct.LessThan(minPct) {
			minPct = p.DrawdownPct
		}
	}
	return minPct
}

// DrawdownByTicker computes the drawdown series and maximum for every
// non-TOTAL ticker in the given history rows. Rows tagged NO PRICE carry no
// valuation; treating their zero total_value as real would report a full
// -100% decline, so they are excluded from the walk.
func DrawdownByTicker(historyRows []model.HistoryRow) map[string]TickerDrawdown {
	byTicker := make(map[string][]model.HistoryRow)
	for _, row := range historyRows {
		if row.IsTotal() || row.Action == model.ActionNoPrice {
			continue
		}
		byTicker[row.Ticker] = append(byTicker[row.Ticker], row)
	}

	result := make(map[string]TickerDrawdown, len(byTicker))
	for ticker, rows := range byTicker {
		points := ComputeDrawdown(rows)
		maxAbs := decimal.Zero
		for _, p := range points {
			if p.DrawdownAbs.LessThan(maxAbs) {
				maxAbs = p.DrawdownAbs
			}
		}
		result[ticker] = TickerDrawdown{
			Ticker:         ticker,
			MaxDrawdownPct: MaxDrawdownPct(points),
			MaxDrawdownAbs: maxAbs,
			Points:         points,
		}
	}
	return result
}
