package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	minutes, err := ParseTimeOfDay("18:30:00")
	require.NoError(t, err)
	require.Equal(t, 18*60+30, minutes)

	minutes, err = ParseTimeOfDay("18:30")
	require.NoError(t, err)
	require.Equal(t, 18*60+30, minutes)

	_, err = ParseTimeOfDay("half past six")
	require.Error(t, err)

	_, err = ParseTimeOfDay("25:00")
	require.Error(t, err)
}

func TestNormalizeTimeOfDay(t *testing.T) {
	got, err := NormalizeTimeOfDay("09:15")
	require.NoError(t, err)
	require.Equal(t, "09:15:00", got)

	got, err = NormalizeTimeOfDay("09:15:30")
	require.NoError(t, err)
	require.Equal(t, "09:15:30", got)

	_, err = NormalizeTimeOfDay("9am")
	require.Error(t, err)
}

func TestWindowMinutes(t *testing.T) {
	got, err := WindowMinutes("18:00:00", "22:00:00")
	require.NoError(t, err)
	require.Equal(t, 240.0, got)

	// A window ending past midnight wraps into the next day.
	got, err = WindowMinutes("22:00:00", "01:00:00")
	require.NoError(t, err)
	require.Equal(t, 180.0, got)

	// Identical start and end reads as a full day, not zero.
	got, err = WindowMinutes("10:00:00", "10:00:00")
	require.NoError(t, err)
	require.Equal(t, 1440.0, got)

	_, err = WindowMinutes("bad", "22:00:00")
	require.Error(t, err)
}
