package request

import "github.com/shopspring/decimal"

// BuyRequest is the payload for POST /api/ledger/buy.
type BuyRequest struct {
	Ticker   string              `json:"ticker"`
	Shares   int64               `json:"shares"`
	Price    decimal.Decimal     `json:"price"`
	StopLoss decimal.NullDecimal `json:"stopLoss"`
}

// SellRequest is the payload for POST /api/ledger/sell.
type SellRequest struct {
	Ticker string          `json:"ticker"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Reason string          `json:"reason"`
}

// DepositRequest is the payload for POST /api/ledger/deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SnapshotRequest is the payload for POST /api/snapshot. Date defaults to
// today when empty; Force bypasses the trading-calendar gate.
type SnapshotRequest struct {
	Date  string `json:"date"`
	Force bool   `json:"force"`
}

// OverrideRequest is the payload for POST /api/pricing/override.
type OverrideRequest struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}
