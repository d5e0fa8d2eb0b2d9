// Package calendar decides which dates are eligible for valuation snapshots.
package calendar

import "time"

// TradingCalendar gates snapshot creation to trading days: weekdays not
// present in the configured holiday set. It is stateless after construction
// and safe for concurrent use.
type TradingCalendar struct {
	holidays map[string]struct{}
}

// New creates a TradingCalendar from a set of ISO (YYYY-MM-DD) holiday dates.
func New(holidays []string) *TradingCalendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h] = struct{}{}
	}
	return &TradingCalendar{holidays: set}
}

// IsTradingDay reports whether d is a weekday outside the holiday set.
func (c *TradingCalendar) IsTradingDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[d.Format("2006-01-02")]
	return !holiday
}

// NextTradingDay returns the smallest date strictly after d for which
// IsTradingDay holds.
func (c *TradingCalendar) NextTradingDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for !c.IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
