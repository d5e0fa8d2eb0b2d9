package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TickerCash is the reserved ticker value for cash-only log entries
// (deposits).
const TickerCash = "CASH"

// TradeLogEntry is one immutable row of the append-only trade log.
// Entries are never updated or deleted after insertion; the log is the durable
// source of truth for reconstructing balances.
//
// A buy sets SharesBought/BuyPrice/CostBasis; a sell sets
// SharesSold/SellPrice/PnL plus the cost basis of the shares sold; a deposit
// sets only Deposit under the reserved CASH ticker.
type TradeLogEntry struct {
	ID           int64           `json:"id"`
	Date         time.Time       `json:"date"`
	Ticker       string          `json:"ticker"`
	SharesBought int64           `json:"sharesBought"`
	BuyPrice     decimal.Decimal `json:"buyPrice"`
	CostBasis    decimal.Decimal `json:"costBasis"`
	PnL          decimal.Decimal `json:"pnl"`
	Reason       string          `json:"reason"`
	SharesSold   int64           `json:"sharesSold"`
	SellPrice    decimal.Decimal `json:"sellPrice"`
	Deposit      decimal.Decimal `json:"deposit"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}

// IsBuy reports whether the entry records a purchase.
func (e TradeLogEntry) IsBuy() bool { return e.SharesBought > 0 }

// IsSell reports whether the entry records a sale.
func (e TradeLogEntry) IsSell() bool { return e.SharesSold > 0 }

// IsDeposit reports whether the entry records a cash deposit.
func (e TradeLogEntry) IsDeposit() bool { return e.Deposit.Sign() > 0 }
