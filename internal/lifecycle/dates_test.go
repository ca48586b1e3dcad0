package lifecycle

import (
	"testing"
	"time"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateValid(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), d)

	// Leap day in a leap year
	d, err = ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDateRejectsCalendarOverflow(t *testing.T) {
	// Naive construction would roll these over into the next month.
	for _, input := range []string{
		"2025-02-30",
		"2025-02-29", // not a leap year
		"2025-04-31",
		"2025-13-01",
		"2025-00-10",
		"2025-01-00",
	} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, apperror.ErrInvalidDateFormat, "input %q", input)
	}
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"2025",
		"2025-01",
		"2025/01/15",
		"01-15-2025",
		"2025-Jan-15",
		"2025-01-15-00",
		"abcd-ef-gh",
	} {
		_, err := ParseDate(input)
		assert.ErrorIs(t, err, apperror.ErrInvalidDateFormat, "input %q", input)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2030-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2030-12-31", FormatDate(d))
}
