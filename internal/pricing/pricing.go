// Package pricing defines the market-data collaborator consumed by the
// snapshot engine. Acquisition of live prices lives outside this service;
// implementations here cover configured static quotes and caller-owned manual
// overrides.
package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
)

// Source resolves the price of a ticker for a date. Implementations return
// apperrors.ErrPriceUnavailable when no quote exists; callers must handle
// unavailability explicitly rather than assuming zero.
type Source interface {
	Price(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error)
}

// StaticSource serves a fixed price table. Used for synthetic environments
// and tests.
type StaticSource struct {
	prices map[string]decimal.Decimal
}

// NewStaticSource creates a StaticSource from a ticker -> price table.
func NewStaticSource(prices map[string]decimal.Decimal) *StaticSource {
	cloned := make(map[string]decimal.Decimal, len(prices))
	for t, p := range prices {
		cloned[t] = p
	}
	return &StaticSource{prices: cloned}
}

// Price implements Source.
func (s *StaticSource) Price(_ context.Context, ticker string, _ time.Time) (decimal.Decimal, error) {
	p, ok := s.prices[ticker]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrPriceUnavailable, ticker)
	}
	return p, nil
}

// Overrides holds manual per-ticker price overrides. The value is created and
// owned by the caller and injected where needed; it is not process-global
// state. Safe for concurrent use.
type Overrides struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewOverrides creates an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{prices: make(map[string]decimal.Decimal)}
}

// Set records a manual price for a ticker.
func (o *Overrides) Set(ticker string, price decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[ticker] = price
}

// Clear removes the manual price for a ticker.
func (o *Overrides) Clear(ticker string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.prices, ticker)
}

// Get returns the manual price for a ticker, if one is set.
func (o *Overrides) Get(ticker string) (decimal.Decimal, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.prices[ticker]
	return p, ok
}

// OverrideSource consults manual overrides before delegating to the wrapped
// source.
type OverrideSource struct {
	Overrides *Overrides
	Next      Source
}

// Price implements Source.
func (s *OverrideSource) Price(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	if p, ok := s.Overrides.Get(ticker); ok {
		return p, nil
	}
	if s.Next == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrPriceUnavailable, ticker)
	}
	return s.Next.Price(ctx, ticker, date)
}
