package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-3-15")
	assert.Error(t, err)
}

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow("2025-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = MonthWindow("2025-13")
	assert.Error(t, err)
}

func TestDateBetween(t *testing.T) {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateBetween(from, from, to))
	assert.True(t, DateBetween(to, from, to))
	assert.True(t, DateBetween(time.Date(2025, time.March, 1, 12, 30, 0, 0, time.UTC), from, to))
	assert.False(t, DateBetween(from.AddDate(0, 0, -1), from, to))
	assert.False(t, DateBetween(to.AddDate(0, 0, 1), from, to))
}
