package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TickerTotal is the reserved ticker value for the per-date aggregate row.
const TickerTotal = "TOTAL"

// Snapshot row actions.
const (
	ActionHold = "HOLD"
	ActionBuy  = "BUY"
	ActionSell = "SELL"

	// ActionNoPrice marks a row whose price source had no quote for the date.
	// The row is written with zero price, value and pnl rather than silently
	// valued, so audits can distinguish "unpriced" from "worthless".
	ActionNoPrice = "NO PRICE"
)

// HistoryRow is one valuation row in portfolio_history: one per held ticker
// per date, plus one TOTAL row per date. CashBalance and TotalEquity are only
// populated on the TOTAL row; CostBasis is the position's total cost.
type HistoryRow struct {
	Date         time.Time           `json:"date"`
	Ticker       string              `json:"ticker"`
	Shares       int64               `json:"shares"`
	CostBasis    decimal.Decimal     `json:"costBasis"`
	StopLoss     decimal.NullDecimal `json:"stopLoss"`
	CurrentPrice decimal.Decimal     `json:"currentPrice"`
	TotalValue   decimal.Decimal     `json:"totalValue"`
	PnL          decimal.Decimal     `json:"pnl"`
	Action       string              `json:"action"`
	CashBalance  decimal.Decimal     `json:"cashBalance"`
	TotalEquity  decimal.Decimal     `json:"totalEquity"`
}

// IsTotal reports whether the row is the per-date aggregate.
func (r HistoryRow) IsTotal() bool { return r.Ticker == TickerTotal }
