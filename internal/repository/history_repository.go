package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// HistoryRepository provides data access for the portfolio_history table:
// daily valuation rows, one per held ticker per date plus the TOTAL aggregate.
// A date's row set is always written as a unit; no partial date can exist.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the provided database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const historyColumns = `date, ticker, shares, cost_basis, stop_loss, current_price, total_value, pnl, action, cash_balance, total_equity`

// ReplaceDay atomically replaces all rows for a date with the given row set.
// Re-running a snapshot for a date therefore overwrites rather than
// duplicates it.
func (r *HistoryRepository) ReplaceDay(ctx context.Context, date time.Time, historyRows []model.HistoryRow) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM portfolio_history WHERE date = ?`, FormatDate(date)); err != nil {
			return fmt.Errorf("failed to clear history rows for date: %w", err)
		}
		return insertHistoryRows(tx, historyRows)
	})
}

// ReplaceDays atomically replaces several dates in one transaction. Used by
// the synthetic backfill so a fault cannot leave half a regenerated history.
func (r *HistoryRepository) ReplaceDays(ctx context.Context, days map[string][]model.HistoryRow) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for dateStr, historyRows := range days {
			if _, err := tx.Exec(`DELETE FROM portfolio_history WHERE date = ?`, dateStr); err != nil {
				return fmt.Errorf("failed to clear history rows for date: %w", err)
			}
			if err := insertHistoryRows(tx, historyRows); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetDay returns all rows for one date, per-ticker rows first and TOTAL last.
func (r *HistoryRepository) GetDay(ctx context.Context, date time.Time) ([]model.HistoryRow, error) {
	return r.queryHistory(ctx, `
		SELECT `+historyColumns+`
		FROM portfolio_history
		WHERE date = ?
		ORDER BY CASE WHEN ticker = 'TOTAL' THEN 1 ELSE 0 END, ticker ASC
	`, FormatDate(date))
}

// GetRange returns all rows with date in [startDate, endDate], ordered by
// date then ticker with TOTAL last within each date.
func (r *HistoryRepository) GetRange(ctx context.Context, startDate, endDate time.Time) ([]model.HistoryRow, error) {
	return r.queryHistory(ctx, `
		SELECT `+historyColumns+`
		FROM portfolio_history
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, CASE WHEN ticker = 'TOTAL' THEN 1 ELSE 0 END, ticker ASC
	`, FormatDate(startDate), FormatDate(endDate))
}

// TickerHistory returns the valuation rows of one ticker in ascending date order.
func (r *HistoryRepository) TickerHistory(ctx context.Context, ticker string) ([]model.HistoryRow, error) {
	return r.queryHistory(ctx, `
		SELECT `+historyColumns+`
		FROM portfolio_history
		WHERE ticker = ?
		ORDER BY date ASC
	`, ticker)
}

// Totals returns every TOTAL row in ascending date order.
func (r *HistoryRepository) Totals(ctx context.Context) ([]model.HistoryRow, error) {
	return r.TickerHistory(ctx, model.TickerTotal)
}

// Tickers returns the distinct non-TOTAL tickers present in the history.
func (r *HistoryRepository) Tickers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ticker
		FROM portfolio_history
		WHERE ticker != ?
		ORDER BY ticker ASC
	`, model.TickerTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_history table: %w", err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_history table results: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_history table: %w", err)
	}
	return tickers, nil
}

// CountHistoricalDays counts distinct per-ticker snapshot dates other than
// excludeDate. Used by the backfill no-op check.
func (r *HistoryRepository) CountHistoricalDays(ctx context.Context, excludeDate time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT date)
		FROM portfolio_history
		WHERE date != ? AND ticker != ?
	`, FormatDate(excludeDate), model.TickerTotal).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count historical days: %w", err)
	}
	return count, nil
}

// DeleteAllExcept removes every history row not belonging to keepDate.
func (r *HistoryRepository) DeleteAllExcept(ctx context.Context, keepDate time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM portfolio_history WHERE date != ?`, FormatDate(keepDate)); err != nil {
			return fmt.Errorf("failed to clear historical rows: %w", err)
		}
		return nil
	})
}

func (r *HistoryRepository) queryHistory(ctx context.Context, query string, args ...any) ([]model.HistoryRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_history table: %w", err)
	}
	defer rows.Close()

	historyRows := []model.HistoryRow{}
	for rows.Next() {
		var h model.HistoryRow
		var dateStr string

		err := rows.Scan(
			&dateStr,
			&h.Ticker,
			&h.Shares,
			&h.CostBasis,
			&h.StopLoss,
			&h.CurrentPrice,
			&h.TotalValue,
			&h.PnL,
			&h.Action,
			&h.CashBalance,
			&h.TotalEquity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_history table results: %w", err)
		}
		h.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}

		historyRows = append(historyRows, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_history table: %w", err)
	}
	return historyRows, nil
}

func insertHistoryRows(tx *sql.Tx, historyRows []model.HistoryRow) error {
	stmt, err := tx.Prepare(`
		INSERT INTO portfolio_history (` + historyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range historyRows {
		_, err := stmt.Exec(
			FormatDate(h.Date),
			h.Ticker,
			h.Shares,
			h.CostBasis,
			h.StopLoss,
			h.CurrentPrice,
			h.TotalValue,
			h.PnL,
			h.Action,
			h.CashBalance,
			h.TotalEquity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert history row: %w", err)
		}
	}
	return nil
}
