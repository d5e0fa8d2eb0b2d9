// Package audit emits structured audit events for ledger and snapshot
// operations. Every logical operation carries a correlation id so trades,
// snapshots and their failures can be tied together downstream.
package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Logger wraps a zerolog logger with the event vocabulary of the journal.
type Logger struct {
	log zerolog.Logger
}

// New creates an audit Logger writing through the given zerolog logger.
func New(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "audit").Logger()}
}

// NewCorrelationID returns a fresh correlation id for one logical operation.
func NewCorrelationID() string {
	return uuid.New().String()
}

// TradeApplied records a committed buy or sell.
func (l *Logger) TradeApplied(corrID, side, ticker string, shares int64, price, cash decimal.Decimal) {
	l.log.Info().
		Str("event", "trade_applied").
		Str("correlation_id", corrID).
		Str("side", side).
		Str("ticker", ticker).
		Int64("shares", shares).
		Str("price", price.String()).
		Str("cash_balance", cash.String()).
		Msg("Trade applied")
}

// CashAdjusted records a committed deposit or withdrawal.
func (l *Logger) CashAdjusted(corrID string, amount, balance decimal.Decimal) {
	l.log.Info().
		Str("event", "cash_adjusted").
		Str("correlation_id", corrID).
		Str("amount", amount.String()).
		Str("cash_balance", balance.String()).
		Msg("Cash adjusted")
}

// SnapshotCreated records a committed snapshot row set.
func (l *Logger) SnapshotCreated(corrID string, date time.Time, rowCount int, totalEquity decimal.Decimal) {
	l.log.Info().
		Str("event", "snapshot_created").
		Str("correlation_id", corrID).
		Str("date", date.Format("2006-01-02")).
		Int("rows", rowCount).
		Str("total_equity", totalEquity.String()).
		Msg("Snapshot created")
}

// SnapshotSkipped records a snapshot request gated out by the trading calendar.
func (l *Logger) SnapshotSkipped(corrID string, date time.Time) {
	l.log.Info().
		Str("event", "snapshot_skipped").
		Str("correlation_id", corrID).
		Str("date", date.Format("2006-01-02")).
		Msg("Snapshot skipped: not a trading day")
}

// ValidationFailed records a caller contract violation. These are surfaced to
// the caller as well; the event exists for audit trails, not error handling.
func (l *Logger) ValidationFailed(corrID, operation string, err error) {
	l.log.Warn().
		Str("event", "validation_failed").
		Str("correlation_id", corrID).
		Str("operation", operation).
		Err(err).
		Msg("Validation failed")
}

// BackfillRun records a synthetic history generation pass.
func (l *Logger) BackfillRun(corrID string, daysGenerated int) {
	l.log.Info().
		Str("event", "backfill_run").
		Str("correlation_id", corrID).
		Int("days_generated", daysGenerated).
		Msg("Synthetic backfill completed")
}
