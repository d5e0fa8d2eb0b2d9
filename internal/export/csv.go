// Package export renders persisted journal data for report tooling.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// historyHeader matches the portfolio_history column order.
var historyHeader = []string{
	"date", "ticker", "shares", "cost_basis", "stop_loss",
	"current_price", "total_value", "pnl", "action",
	"cash_balance", "total_equity",
}

// WriteHistoryCSV streams valuation rows as CSV. Rows are written in the
// order given; callers pass repository output which is already date-ordered
// with TOTAL last per date.
func WriteHistoryCSV(w io.Writer, historyRows []model.HistoryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(historyHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, h := range historyRows {
		stopLoss := ""
		if h.StopLoss.Valid {
			stopLoss = h.StopLoss.Decimal.String()
		}
		record := []string{
			h.Date.Format("2006-01-02"),
			h.Ticker,
			strconv.FormatInt(h.Shares, 10),
			h.CostBasis.String(),
			stopLoss,
			h.CurrentPrice.String(),
			h.TotalValue.String(),
			h.PnL.String(),
			h.Action,
			h.CashBalance.String(),
			h.TotalEquity.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
