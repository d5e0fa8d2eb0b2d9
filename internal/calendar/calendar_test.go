package calendar_test

import (
	"testing"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/calendar"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// TestIsTradingDay tests weekend and holiday gating.
//
// WHY: The snapshot engine relies on the calendar to skip ineligible dates;
// a wrong answer here writes valuation rows for days the market was closed.
func TestIsTradingDay(t *testing.T) {
	cal := calendar.New([]string{"2026-01-01", "2026-07-03"})

	cases := []struct {
		name string
		date string
		want bool
	}{
		{"regular Monday", "2026-01-05", true},
		{"regular Friday", "2026-01-09", true},
		{"Saturday", "2026-01-10", false},
		{"Sunday", "2026-01-11", false},
		{"configured holiday on a weekday", "2026-01-01", false},
		{"second configured holiday", "2026-07-03", false},
		{"day after holiday", "2026-01-02", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.IsTradingDay(date(tc.date)); got != tc.want {
				t.Errorf("IsTradingDay(%s) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

// TestNextTradingDay tests rolling forward over weekends and holidays.
func TestNextTradingDay(t *testing.T) {
	cal := calendar.New([]string{"2026-01-01"})

	cases := []struct {
		name string
		from string
		want string
	}{
		{"weekday to next weekday", "2026-01-05", "2026-01-06"},
		{"Friday skips the weekend", "2026-01-09", "2026-01-12"},
		{"Saturday rolls to Monday", "2026-01-10", "2026-01-12"},
		{"New Year's Eve skips the holiday", "2025-12-31", "2026-01-02"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cal.NextTradingDay(date(tc.from))
			if !got.Equal(date(tc.want)) {
				t.Errorf("NextTradingDay(%s) = %s, want %s", tc.from, got.Format("2006-01-02"), tc.want)
			}
		})
	}
}
