package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDateAcceptsRFC3339(t *testing.T) {
	parsed, err := ParseQueryDate("2024-03-01T12:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC), parsed)
}

func TestParseQueryDateAcceptsShortFormat(t *testing.T) {
	parsed, err := ParseQueryDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseQueryDateEmptyIsZero(t *testing.T) {
	parsed, err := ParseQueryDate("")
	require.NoError(t, err)
	assert.True(t, parsed.IsZero())
}

func TestParseQueryDateRejectsGarbage(t *testing.T) {
	_, err := ParseQueryDate("ontem")
	assert.Error(t, err)
}

func TestParseDateRangeRejectsInvertedRange(t *testing.T) {
	_, _, err := ParseDateRange("2024-03-02", "2024-03-01")
	assert.Error(t, err)
}

func TestParseDateRangeAllowsOpenEnds(t *testing.T) {
	from, to, err := ParseDateRange("", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.False(t, to.IsZero())
}
