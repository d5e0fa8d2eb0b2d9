package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/audit"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// LedgerService handles trade and cash business logic: input validation,
// caller policy (cash may not go negative through the API) and audit events.
// Atomicity of the underlying mutations is the repository's responsibility.
type LedgerService struct {
	ledgerRepo *repository.LedgerRepository
	auditLog   *audit.Logger
	now        func() time.Time
}

// NewLedgerService creates a new LedgerService with the provided dependencies.
// now supplies the trade date; pass time.Now in production.
func NewLedgerService(ledgerRepo *repository.LedgerRepository, auditLog *audit.Logger, now func() time.Time) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		auditLog:   auditLog,
		now:        now,
	}
}

// Buy validates and executes a purchase. On any validation failure nothing is
// persisted; the repository guarantees the position, cash and trade-log
// effects commit together or not at all.
func (s *LedgerService) Buy(ctx context.Context, ticker string, shares int64, price decimal.Decimal, stopLoss decimal.NullDecimal) (repository.BuyResult, error) {
	corrID := audit.NewCorrelationID()

	normalized, err := validation.ValidateBuy(ticker, shares, price, stopLoss)
	if err != nil {
		s.auditLog.ValidationFailed(corrID, "buy", err)
		return repository.BuyResult{}, err
	}

	result, err := s.ledgerRepo.ApplyBuy(ctx, s.today(), normalized, shares, price, stopLoss)
	if err != nil {
		return repository.BuyResult{}, err
	}

	s.auditLog.TradeApplied(corrID, "buy", normalized, shares, price, result.Cash)
	return result, nil
}

// Sell validates and executes a sale. The reason is recorded verbatim in the
// trade log; an empty reason defaults to a manual sell marker.
func (s *LedgerService) Sell(ctx context.Context, ticker string, shares int64, price decimal.Decimal, reason string) (repository.SellResult, error) {
	corrID := audit.NewCorrelationID()

	normalized, err := validation.ValidateSell(ticker, shares, price)
	if err != nil {
		s.auditLog.ValidationFailed(corrID, "sell", err)
		return repository.SellResult{}, err
	}
	if reason == "" {
		reason = "MANUAL SELL"
	}

	result, err := s.ledgerRepo.ApplySell(ctx, s.today(), normalized, shares, price, reason)
	if err != nil {
		return repository.SellResult{}, err
	}

	s.auditLog.TradeApplied(corrID, "sell", normalized, shares, price, result.Cash)
	return result, nil
}

// Deposit adds a positive amount to the cash balance and records it in the
// trade log, so cash reconstruction can replay it. Withdrawals are not
// exposed through the API; the repository-level adjustment stays signed for
// internal callers.
func (s *LedgerService) Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	corrID := audit.NewCorrelationID()

	if err := validation.ValidateAmount(amount); err != nil {
		s.auditLog.ValidationFailed(corrID, "deposit", err)
		return decimal.Decimal{}, err
	}

	balance, err := s.ledgerRepo.RecordDeposit(ctx, s.today(), amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	s.auditLog.CashAdjusted(corrID, amount, balance)
	return balance, nil
}

// State returns the committed positions, cash balance and first-time flag.
func (s *LedgerService) State(ctx context.Context) (model.LedgerState, error) {
	return s.ledgerRepo.LoadState(ctx)
}

// TradeLog returns the full trade history in ascending date order.
func (s *LedgerService) TradeLog(ctx context.Context) ([]model.TradeLogEntry, error) {
	return s.ledgerRepo.TradeLog(ctx)
}

func (s *LedgerService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}
