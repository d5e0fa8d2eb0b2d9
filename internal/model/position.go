package model

import "github.com/shopspring/decimal"

// Position represents the current holding of a single ticker.
// There is at most one Position per ticker; a position is removed entirely
// when its share count reaches zero.
type Position struct {
	Ticker    string              `json:"ticker"`
	Shares    int64               `json:"shares"`
	BuyPrice  decimal.Decimal     `json:"buyPrice"` // weighted-average cost per share
	StopLoss  decimal.NullDecimal `json:"stopLoss"`
	CostBasis decimal.Decimal     `json:"costBasis"` // shares * buyPrice
}

// LedgerState is the full committed view of the ledger returned to callers.
// IsFirstTime signals an empty, newly initialized ledger (no positions and no
// cash row) so callers can seed defaults.
type LedgerState struct {
	Positions   []Position      `json:"positions"`
	Cash        decimal.Decimal `json:"cash"`
	IsFirstTime bool            `json:"isFirstTime"`
}
