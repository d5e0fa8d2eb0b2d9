package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
)

// Error is a field-keyed validation error returned to API callers.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ParseDate parses a date string in YYYY-MM-DD format and returns it in UTC.
func ParseDate(str string) (time.Time, error) {
	if strings.TrimSpace(str) == "" {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	d, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, str)
	}
	return d.UTC(), nil
}

// ValidateDateRange checks that start does not come after end.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}
