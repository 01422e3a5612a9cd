package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	t.Run("known zone", func(t *testing.T) {
		loc := LoadLocation("Africa/Tunis")
		assert.Equal(t, "Africa/Tunis", loc.String())
	})

	t.Run("empty name falls back to UTC", func(t *testing.T) {
		assert.Equal(t, time.UTC, LoadLocation(""))
	})

	t.Run("unknown name falls back to UTC", func(t *testing.T) {
		assert.Equal(t, time.UTC, LoadLocation("Atlantis/Lost"))
	})
}

func TestLocalMinute(t *testing.T) {
	tunis, err := time.LoadLocation("Africa/Tunis")
	require.NoError(t, err)

	t.Run("naive timestamp read in location", func(t *testing.T) {
		mm, ok := LocalMinute("2026-08-29T14:30", tunis)
		require.True(t, ok)
		assert.Equal(t, 14*60+30, mm)
	})

	t.Run("naive timestamp with seconds", func(t *testing.T) {
		mm, ok := LocalMinute("2026-08-29T08:00:00", tunis)
		require.True(t, ok)
		assert.Equal(t, 8*60, mm)
	})

	t.Run("offset timestamp converted into location", func(t *testing.T) {
		// 12:00 UTC is 13:00 in Tunis (CET, no DST).
		mm, ok := LocalMinute("2026-08-29T12:00:00Z", tunis)
		require.True(t, ok)
		assert.Equal(t, 13*60, mm)
	})

	t.Run("midnight", func(t *testing.T) {
		mm, ok := LocalMinute("2026-08-29T00:00", tunis)
		require.True(t, ok)
		assert.Equal(t, 0, mm)
	})

	t.Run("nil location defaults to UTC", func(t *testing.T) {
		mm, ok := LocalMinute("2026-08-29T09:15", nil)
		require.True(t, ok)
		assert.Equal(t, 9*60+15, mm)
	})

	t.Run("unparseable timestamp", func(t *testing.T) {
		for _, ts := range []string{"", "not a time", "29/08/2026 14:00", "2026-08-29"} {
			_, ok := LocalMinute(ts, tunis)
			assert.False(t, ok, "timestamp %q should not parse", ts)
		}
	})
}
