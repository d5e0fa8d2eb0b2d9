package repository

import (
	"fmt"
	"time"
)

// dateFormat is the canonical storage format for date columns.
const dateFormat = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateFormat, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatDate renders a date the way it is stored in date columns.
func FormatDate(t time.Time) string {
	return t.Format(dateFormat)
}
