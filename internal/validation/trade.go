package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/model"
)

// tickerRe matches one letter followed by up to nine alphanumerics or dots,
// e.g. AAPL, BRK.B, ABEO.
var tickerRe = regexp.MustCompile(`^[A-Z][A-Z0-9.]{0,9}$`)

// reservedTickers are pseudo-ticker values the journal writes itself: TOTAL
// on aggregate history rows, CASH on deposit log entries. Trading under them
// would collide with those rows.
var reservedTickers = map[string]bool{
	model.TickerTotal: true,
	model.TickerCash:  true,
}

// NormalizeTicker trims and upcases a ticker symbol and validates its shape.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerRe.MatchString(t) || reservedTickers[t] {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTicker, ticker)
	}
	return t, nil
}

// ValidateShares checks that a share quantity is a positive integer.
func ValidateShares(shares int64) error {
	if shares <= 0 {
		return apperrors.ErrInvalidShares
	}
	return nil
}

// ValidatePrice checks that a price is strictly positive.
func ValidatePrice(price decimal.Decimal) error {
	if price.Sign() <= 0 {
		return apperrors.ErrInvalidPrice
	}
	return nil
}

// ValidateStopLoss checks that a stop loss, when set, is strictly positive.
func ValidateStopLoss(stopLoss decimal.NullDecimal) error {
	if stopLoss.Valid && stopLoss.Decimal.Sign() <= 0 {
		return apperrors.ErrInvalidStopLoss
	}
	return nil
}

// ValidateAmount checks that a cash amount is strictly positive. Deposits
// through the API accept positive amounts only.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

// ValidateBuy validates all fields of a buy order. Returns the normalized
// ticker along with a field-keyed validation error if any check fails.
func ValidateBuy(ticker string, shares int64, price decimal.Decimal, stopLoss decimal.NullDecimal) (string, error) {
	errs := make(map[string]string)

	t, err := NormalizeTicker(ticker)
	if err != nil {
		errs["ticker"] = err.Error()
	}
	if err := ValidateShares(shares); err != nil {
		errs["shares"] = err.Error()
	}
	if err := ValidatePrice(price); err != nil {
		errs["price"] = err.Error()
	}
	if err := ValidateStopLoss(stopLoss); err != nil {
		errs["stopLoss"] = err.Error()
	}

	if len(errs) > 0 {
		return "", &Error{Fields: errs}
	}
	return t, nil
}

// ValidateSell validates all fields of a sell order. Returns the normalized
// ticker along with a field-keyed validation error if any check fails.
func ValidateSell(ticker string, shares int64, price decimal.Decimal) (string, error) {
	errs := make(map[string]string)

	t, err := NormalizeTicker(ticker)
	if err != nil {
		errs["ticker"] = err.Error()
	}
	if err := ValidateShares(shares); err != nil {
		errs["shares"] = err.Error()
	}
	if err := ValidatePrice(price); err != nil {
		errs["price"] = err.Error()
	}

	if len(errs) > 0 {
		return "", &Error{Fields: errs}
	}
	return t, nil
}
