package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// LedgerRepository is the authoritative, transactional owner of positions,
// the cash balance and the append-only trade log. Every mutation commits the
// position, cash and trade-log effects as one atomic unit; on any failure the
// transaction rolls back and nothing persists.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// BuyResult carries the post-commit state of a buy.
type BuyResult struct {
	Position model.Position      `json:"position"`
	Cash     decimal.Decimal     `json:"cash"`
	Entry    model.TradeLogEntry `json:"entry"`
}

// SellResult carries the post-commit state of a sell. Position is nil when the
// sale liquidated the holding entirely.
type SellResult struct {
	Position *model.Position     `json:"position"`
	Cash     decimal.Decimal     `json:"cash"`
	PnL      decimal.Decimal     `json:"pnl"`
	Entry    model.TradeLogEntry `json:"entry"`
}

// ApplyBuy merges a purchase into the ledger. An existing position is merged
// with the weighted-average cost formula
//
//	newBuyPrice = (oldBuyPrice*oldShares + price*shares) / (oldShares + shares)
//
// rounded to cents; the stop loss is replaced by the supplied value. Cash
// decreases by shares*price and a trade-log entry is appended. The buy is
// rejected with ErrInsufficientCash when its cost exceeds the balance.
func (r *LedgerRepository) ApplyBuy(ctx context.Context, date time.Time, ticker string, shares int64, price decimal.Decimal, stopLoss decimal.NullDecimal) (BuyResult, error) {
	var result BuyResult

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		balance, _, err := cashBalance(tx)
		if err != nil {
			return err
		}

		cost := price.Mul(decimal.NewFromInt(shares))
		if cost.GreaterThan(balance) {
			return apperrors.ErrInsufficientCash
		}

		pos, found, err := positionForUpdate(tx, ticker)
		if err != nil {
			return err
		}

		reason := "MANUAL BUY - New position"
		if found {
			reason = "MANUAL BUY - Add to position"
			totalShares := pos.Shares + shares
			weighted := pos.BuyPrice.Mul(decimal.NewFromInt(pos.Shares)).
				Add(price.Mul(decimal.NewFromInt(shares))).
				Div(decimal.NewFromInt(totalShares)).
				Round(2)
			pos.Shares = totalShares
			pos.BuyPrice = weighted
		} else {
			pos = model.Position{Ticker: ticker, Shares: shares, BuyPrice: price.Round(2)}
		}
		pos.StopLoss = stopLoss
		pos.CostBasis = pos.BuyPrice.Mul(decimal.NewFromInt(pos.Shares))

		if err := upsertPosition(tx, pos); err != nil {
			return err
		}

		newBalance := balance.Sub(cost)
		if err := setCashBalance(tx, newBalance); err != nil {
			return err
		}

		entry := model.TradeLogEntry{
			Date:         date,
			Ticker:       ticker,
			SharesBought: shares,
			BuyPrice:     price,
			CostBasis:    cost,
			Reason:       reason,
		}
		entry.ID, err = appendTradeLog(tx, entry)
		if err != nil {
			return err
		}

		result = BuyResult{Position: pos, Cash: newBalance, Entry: entry}
		return nil
	})
	if err != nil {
		return BuyResult{}, err
	}
	return result, nil
}

// ApplySell records a sale against an existing position. Realized pnl is
// (price - buyPrice) * shares. The position row is decremented, or deleted
// when the resulting share count is zero; cash increases by shares*price and
// a trade-log entry is appended. Fails with ErrPositionNotFound when no
// position is held and ErrInsufficientShares when the holding is too small.
func (r *LedgerRepository) ApplySell(ctx context.Context, date time.Time, ticker string, shares int64, price decimal.Decimal, reason string) (SellResult, error) {
	var result SellResult

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		pos, found, err := positionForUpdate(tx, ticker)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", apperrors.ErrPositionNotFound, ticker)
		}
		if shares > pos.Shares {
			return fmt.Errorf("%w: have %d, want to sell %d", apperrors.ErrInsufficientShares, pos.Shares, shares)
		}

		pnl := price.Sub(pos.BuyPrice).Mul(decimal.NewFromInt(shares)).Round(2)
		proceeds := price.Mul(decimal.NewFromInt(shares))

		remaining := pos.Shares - shares
		var remainingPos *model.Position
		if remaining == 0 {
			if err := deletePosition(tx, ticker); err != nil {
				return err
			}
		} else {
			pos.Shares = remaining
			pos.CostBasis = pos.BuyPrice.Mul(decimal.NewFromInt(remaining))
			if err := upsertPosition(tx, pos); err != nil {
				return err
			}
			p := pos
			remainingPos = &p
		}

		balance, _, err := cashBalance(tx)
		if err != nil {
			return err
		}
		newBalance := balance.Add(proceeds)
		if err := setCashBalance(tx, newBalance); err != nil {
			return err
		}

		entry := model.TradeLogEntry{
			Date:       date,
			Ticker:     ticker,
			CostBasis:  pos.BuyPrice.Mul(decimal.NewFromInt(shares)),
			PnL:        pnl,
			Reason:     reason,
			SharesSold: shares,
			SellPrice:  price,
		}
		entry.ID, err = appendTradeLog(tx, entry)
		if err != nil {
			return err
		}

		result = SellResult{Position: remainingPos, Cash: newBalance, PnL: pnl, Entry: entry}
		return nil
	})
	if err != nil {
		return SellResult{}, err
	}
	return result, nil
}

// AdjustCash applies a signed delta to the cash balance and returns the new
// balance. Sign policy (e.g. deposits only) is enforced by the caller.
func (r *LedgerRepository) AdjustCash(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		balance, _, err := cashBalance(tx)
		if err != nil {
			return err
		}
		newBalance = balance.Add(amount)
		return setCashBalance(tx, newBalance)
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return newBalance, nil
}

// RecordDeposit credits the cash balance and appends a deposit entry to the
// trade log in the same transaction, so replaying the log reproduces the
// balance. Use AdjustCash for adjustments that are not ledger events, such as
// seeding the opening balance.
func (r *LedgerRepository) RecordDeposit(ctx context.Context, date time.Time, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBalance decimal.Decimal

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		balance, _, err := cashBalance(tx)
		if err != nil {
			return err
		}
		newBalance = balance.Add(amount)
		if err := setCashBalance(tx, newBalance); err != nil {
			return err
		}

		entry := model.TradeLogEntry{
			Date:    date,
			Ticker:  model.TickerCash,
			Reason:  "DEPOSIT",
			Deposit: amount,
		}
		_, err = appendTradeLog(tx, entry)
		return err
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return newBalance, nil
}

// LoadState returns a consistent committed view of all positions and the cash
// balance. IsFirstTime is true for an empty ledger with no cash row.
func (r *LedgerRepository) LoadState(ctx context.Context) (model.LedgerState, error) {
	var state model.LedgerState

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.Query(`
			SELECT ticker, shares, buy_price, stop_loss, cost_basis
			FROM position
			ORDER BY ticker ASC
		`)
		if err != nil {
			return fmt.Errorf("failed to query position table: %w", err)
		}
		defer rows.Close()

		positions := []model.Position{}
		for rows.Next() {
			var p model.Position
			if err := rows.Scan(&p.Ticker, &p.Shares, &p.BuyPrice, &p.StopLoss, &p.CostBasis); err != nil {
				return fmt.Errorf("failed to scan position table results: %w", err)
			}
			positions = append(positions, p)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating position table: %w", err)
		}

		balance, haveCashRow, err := cashBalance(tx)
		if err != nil {
			return err
		}

		state = model.LedgerState{
			Positions:   positions,
			Cash:        balance,
			IsFirstTime: len(positions) == 0 && !haveCashRow,
		}
		return nil
	})
	if err != nil {
		return model.LedgerState{}, err
	}
	return state, nil
}

// Position returns the held position for a ticker.
func (r *LedgerRepository) Position(ctx context.Context, ticker string) (model.Position, error) {
	var p model.Position
	err := r.db.QueryRowContext(ctx, `
		SELECT ticker, shares, buy_price, stop_loss, cost_basis
		FROM position
		WHERE ticker = ?
	`, ticker).Scan(&p.Ticker, &p.Shares, &p.BuyPrice, &p.StopLoss, &p.CostBasis)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, fmt.Errorf("%w: %s", apperrors.ErrPositionNotFound, ticker)
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}
	return p, nil
}

// TradeLog returns the full trade log in ascending date order. Entries on the
// same date keep insertion order via the autoincrement id.
func (r *LedgerRepository) TradeLog(ctx context.Context) ([]model.TradeLogEntry, error) {
	return r.queryTradeLog(ctx, `
		SELECT id, date, ticker, shares_bought, buy_price, cost_basis, pnl, reason, shares_sold, sell_price, deposit, created_at
		FROM trade_log
		ORDER BY date ASC, id ASC
	`)
}

// TradesOn returns the trade-log entries recorded for a single date.
func (r *LedgerRepository) TradesOn(ctx context.Context, date time.Time) ([]model.TradeLogEntry, error) {
	return r.queryTradeLog(ctx, `
		SELECT id, date, ticker, shares_bought, buy_price, cost_basis, pnl, reason, shares_sold, sell_price, deposit, created_at
		FROM trade_log
		WHERE date = ?
		ORDER BY id ASC
	`, FormatDate(date))
}

func (r *LedgerRepository) queryTradeLog(ctx context.Context, query string, args ...any) ([]model.TradeLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_log table: %w", err)
	}
	defer rows.Close()

	entries := []model.TradeLogEntry{}
	for rows.Next() {
		var e model.TradeLogEntry
		var dateStr string
		var createdAtStr sql.NullString

		err := rows.Scan(
			&e.ID,
			&dateStr,
			&e.Ticker,
			&e.SharesBought,
			&e.BuyPrice,
			&e.CostBasis,
			&e.PnL,
			&e.Reason,
			&e.SharesSold,
			&e.SellPrice,
			&e.Deposit,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_log table results: %w", err)
		}
		e.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		if createdAtStr.Valid {
			if created, err := time.Parse("2006-01-02 15:04:05", createdAtStr.String); err == nil {
				e.CreatedAt = created.UTC()
			}
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_log table: %w", err)
	}
	return entries, nil
}

// ----- statement helpers shared by the transactional operations -----

func cashBalance(tx *sql.Tx) (decimal.Decimal, bool, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(`SELECT balance FROM cash WHERE id = 0`).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("failed to scan cash table results: %w", err)
	}
	return balance, true, nil
}

func setCashBalance(tx *sql.Tx, balance decimal.Decimal) error {
	if _, err := tx.Exec(`INSERT OR REPLACE INTO cash (id, balance) VALUES (0, ?)`, balance); err != nil {
		return fmt.Errorf("failed to update cash balance: %w", err)
	}
	return nil
}

func positionForUpdate(tx *sql.Tx, ticker string) (model.Position, bool, error) {
	var p model.Position
	err := tx.QueryRow(`
		SELECT ticker, shares, buy_price, stop_loss, cost_basis
		FROM position
		WHERE ticker = ?
	`, ticker).Scan(&p.Ticker, &p.Shares, &p.BuyPrice, &p.StopLoss, &p.CostBasis)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, false, nil
	}
	if err != nil {
		return model.Position{}, false, fmt.Errorf("failed to scan position table results: %w", err)
	}
	return p, true, nil
}

func upsertPosition(tx *sql.Tx, p model.Position) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO position (ticker, shares, buy_price, stop_loss, cost_basis)
		VALUES (?, ?, ?, ?, ?)
	`, p.Ticker, p.Shares, p.BuyPrice, p.StopLoss, p.CostBasis)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}
	return nil
}

func deletePosition(tx *sql.Tx, ticker string) error {
	if _, err := tx.Exec(`DELETE FROM position WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

func appendTradeLog(tx *sql.Tx, e model.TradeLogEntry) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO trade_log (date, ticker, shares_bought, buy_price, cost_basis, pnl, reason, shares_sold, sell_price, deposit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, FormatDate(e.Date), e.Ticker, e.SharesBought, e.BuyPrice, e.CostBasis, e.PnL, e.Reason, e.SharesSold, e.SellPrice, e.Deposit)
	if err != nil {
		return 0, fmt.Errorf("failed to append trade log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read trade log id: %w", err)
	}
	return id, nil
}
