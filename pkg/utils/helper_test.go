package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingDays(t *testing.T) {
	now := time.Date(2025, time.December, 30, 18, 45, 0, 0, time.UTC)
	days := UpcomingDays(now, 3)

	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), days[2])
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-10-05 ", time.UTC)
	require.NoError(t, err)
	assert.True(t, SameDay(d, time.Date(2025, 10, 5, 23, 0, 0, 0, time.UTC)))

	_, err = ParseDate("05/10/2025", time.UTC)
	assert.Error(t, err)
}

func TestParseInt64(t *testing.T) {
	assert.Equal(t, int64(12), ParseInt64("12", 0))
	assert.Equal(t, int64(0), ParseInt64("x", 0))
	assert.Equal(t, int64(0), ParseInt64("-3", 0))
}
