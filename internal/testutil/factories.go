package testutil

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// SeedCash sets the single-row cash balance directly.
func SeedCash(t *testing.T, db *sql.DB, balance string) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO cash (id, balance) VALUES (0, ?)
		 ON CONFLICT(id) DO UPDATE SET balance = excluded.balance`,
		balance,
	)
	if err != nil {
		t.Fatalf("Failed to seed cash: %v", err)
	}
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	pos := testutil.NewPosition("AAPL").
//	    WithShares(100).
//	    WithBuyPrice("50.00").
//	    Build(t, db)
type PositionBuilder struct {
	Ticker   string
	Shares   int64
	BuyPrice string
	StopLoss string
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition(ticker string) *PositionBuilder {
	return &PositionBuilder{
		Ticker:   ticker,
		Shares:   100,
		BuyPrice: "50.00",
	}
}

// WithShares sets a custom share count.
func (b *PositionBuilder) WithShares(shares int64) *PositionBuilder {
	b.Shares = shares
	return b
}

// WithBuyPrice sets a custom weighted-average buy price.
func (b *PositionBuilder) WithBuyPrice(price string) *PositionBuilder {
	b.BuyPrice = price
	return b
}

// WithStopLoss sets a stop loss.
func (b *PositionBuilder) WithStopLoss(price string) *PositionBuilder {
	b.StopLoss = price
	return b
}

// Build inserts the position and returns the model.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	buyPrice := Money(t, b.BuyPrice)
	costBasis := buyPrice.Mul(decimal.NewFromInt(b.Shares))

	var stopLoss decimal.NullDecimal
	var stopLossArg any
	if b.StopLoss != "" {
		stopLoss = decimal.NullDecimal{Decimal: Money(t, b.StopLoss), Valid: true}
		stopLossArg = b.StopLoss
	}

	_, err := db.Exec(
		`INSERT INTO position (ticker, shares, buy_price, stop_loss, cost_basis)
		 VALUES (?, ?, ?, ?, ?)`,
		b.Ticker, b.Shares, buyPrice.String(), stopLossArg, costBasis.String(),
	)
	if err != nil {
		t.Fatalf("Failed to seed position: %v", err)
	}

	return model.Position{
		Ticker:    b.Ticker,
		Shares:    b.Shares,
		BuyPrice:  buyPrice,
		StopLoss:  stopLoss,
		CostBasis: costBasis,
	}
}

// SeedTradeLogEntry appends a raw trade-log row. Buy entries carry
// sharesBought and buyPrice; sell entries carry sharesSold, sellPrice and pnl.
func SeedTradeLogEntry(t *testing.T, db *sql.DB, date, ticker string, sharesBought int64, buyPrice string, sharesSold int64, sellPrice, pnl, reason string) {
	t.Helper()

	costBasis := "0"
	if sharesBought > 0 {
		costBasis = Money(t, buyPrice).Mul(decimal.NewFromInt(sharesBought)).String()
	}

	_, err := db.Exec(
		`INSERT INTO trade_log (date, ticker, shares_bought, buy_price, cost_basis, pnl, reason, shares_sold, sell_price)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		date, ticker, sharesBought, buyPrice, costBasis, pnl, reason, sharesSold, sellPrice,
	)
	if err != nil {
		t.Fatalf("Failed to seed trade log entry: %v", err)
	}
}
