package validation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// TestNormalizeTicker tests ticker normalization and shape validation.
//
// WHY: Every trade and price lookup is keyed by ticker. Normalization must be
// consistent everywhere or the same holding could split across two rows.
func TestNormalizeTicker(t *testing.T) {
	valid := []struct {
		input string
		want  string
	}{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{"  msft ", "MSFT"},
		{"BRK.B", "BRK.B"},
		{"A", "A"},
		{"A123456789", "A123456789"},
	}
	for _, tc := range valid {
		got, err := validation.NormalizeTicker(tc.input)
		if err != nil {
			t.Errorf("NormalizeTicker(%q) returned unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	// TOTAL and CASH are written by the journal itself and cannot be traded.
	invalid := []string{"", "  ", "1AAPL", ".AAPL", "A123456789X", "AA-PL", "AA PL", "TOTAL", "cash"}
	for _, input := range invalid {
		if _, err := validation.NormalizeTicker(input); !errors.Is(err, apperrors.ErrInvalidTicker) {
			t.Errorf("NormalizeTicker(%q) = %v, want ErrInvalidTicker", input, err)
		}
	}
}

// TestValidateBuy tests field-level validation of buy orders.
func TestValidateBuy(t *testing.T) {
	t.Run("accepts a valid order and normalizes the ticker", func(t *testing.T) {
		ticker, err := validation.ValidateBuy("aapl", 100, decimal.NewFromInt(50), decimal.NullDecimal{})
		if err != nil {
			t.Fatalf("ValidateBuy() returned unexpected error: %v", err)
		}
		if ticker != "AAPL" {
			t.Errorf("Expected normalized ticker AAPL, got %q", ticker)
		}
	})

	t.Run("collects every failing field", func(t *testing.T) {
		stopLoss := decimal.NullDecimal{Decimal: decimal.NewFromInt(-1), Valid: true}
		_, err := validation.ValidateBuy("", 0, decimal.Zero, stopLoss)
		if err == nil {
			t.Fatal("Expected error, got nil")
		}

		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %T", err)
		}
		for _, field := range []string{"ticker", "shares", "price", "stopLoss"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected field error for %q, got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects non-positive shares and price", func(t *testing.T) {
		if _, err := validation.ValidateBuy("AAPL", -5, decimal.NewFromInt(50), decimal.NullDecimal{}); err == nil {
			t.Error("Expected error for negative shares, got nil")
		}
		if _, err := validation.ValidateBuy("AAPL", 5, decimal.NewFromInt(-50), decimal.NullDecimal{}); err == nil {
			t.Error("Expected error for negative price, got nil")
		}
	})
}

// TestValidateSell tests field-level validation of sell orders.
func TestValidateSell(t *testing.T) {
	t.Run("accepts a valid order", func(t *testing.T) {
		ticker, err := validation.ValidateSell(" nvda ", 10, decimal.NewFromInt(700))
		if err != nil {
			t.Fatalf("ValidateSell() returned unexpected error: %v", err)
		}
		if ticker != "NVDA" {
			t.Errorf("Expected normalized ticker NVDA, got %q", ticker)
		}
	})

	t.Run("rejects zero shares", func(t *testing.T) {
		_, err := validation.ValidateSell("NVDA", 0, decimal.NewFromInt(700))
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *validation.Error, got %v", err)
		}
		if _, ok := vErr.Fields["shares"]; !ok {
			t.Errorf("Expected field error for shares, got %v", vErr.Fields)
		}
	})
}

// TestValidateAmount tests the deposit amount check.
func TestValidateAmount(t *testing.T) {
	if err := validation.ValidateAmount(decimal.NewFromFloat(0.01)); err != nil {
		t.Errorf("ValidateAmount(0.01) returned unexpected error: %v", err)
	}
	if err := validation.ValidateAmount(decimal.Zero); !errors.Is(err, apperrors.ErrInvalidAmount) {
		t.Errorf("ValidateAmount(0) = %v, want ErrInvalidAmount", err)
	}
	if err := validation.ValidateAmount(decimal.NewFromInt(-100)); !errors.Is(err, apperrors.ErrInvalidAmount) {
		t.Errorf("ValidateAmount(-100) = %v, want ErrInvalidAmount", err)
	}
}
