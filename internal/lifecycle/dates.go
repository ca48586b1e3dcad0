// Package lifecycle holds the pure rules of the goal lifecycle: date
// parsing, creation validation, status derivation and list filtering.
// Nothing here performs I/O.
package lifecycle

import (
	"strconv"
	"strings"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
)

// DateLayout is the wire format for calendar dates at the API boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a calendar date at UTC midnight.
// The components are re-derived from the constructed date and compared to
// the input, so calendar overflow such as "2025-02-30" is rejected instead
// of silently rolling over into March.
func ParseDate(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, apperror.ErrInvalidDateFormat
	}

	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || year <= 0 || month <= 0 || day <= 0 {
		return time.Time{}, apperror.ErrInvalidDateFormat
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, apperror.ErrInvalidDateFormat
	}
	return d, nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
