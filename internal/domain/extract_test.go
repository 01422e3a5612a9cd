package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSeries(t *testing.T) {
	t.Run("flat hourly payload", func(t *testing.T) {
		payload := []byte(`{
			"meta": {"name": "Gammarth Port", "slug": "gammarth-port", "tz": "Africa/Tunis"},
			"hourly": {
				"time": ["2026-08-29T08:00", "2026-08-29T09:00"],
				"wind_speed_10m": [12.5, 14.0],
				"wind_gusts_10m": [18.0, 20.5],
				"wind_direction_10m": [90, 110],
				"hs": [0.3, 0.35],
				"tp": [5.5, 5.0],
				"weather_code": [1, 2],
				"visibility_km": [20, 18]
			}
		}`)

		s, meta, err := ExtractSeries(payload)
		require.NoError(t, err)

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, "Gammarth Port", meta.Name)
		assert.Equal(t, "gammarth-port", meta.Slug)
		assert.Equal(t, "Africa/Tunis", meta.TZ)

		v, ok := value(s.WindSpeed, 0)
		require.True(t, ok)
		assert.Equal(t, 12.5, v)
		v, ok = value(s.WaveHeight, 1)
		require.True(t, ok)
		assert.Equal(t, 0.35, v)
	})

	t.Run("alias priority prefers suffixed wind names", func(t *testing.T) {
		payload := []byte(`{
			"hourly": {
				"time": ["2026-08-29T08:00"],
				"wind_speed_10m": [10],
				"wind_speed": [99]
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		v, ok := value(s.WindSpeed, 0)
		require.True(t, ok)
		assert.Equal(t, 10.0, v)
	})

	t.Run("wave_height alias accepted when hs absent", func(t *testing.T) {
		payload := []byte(`{
			"hourly": {
				"time": ["2026-08-29T08:00"],
				"wave_height": [0.6]
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		v, ok := value(s.WaveHeight, 0)
		require.True(t, ok)
		assert.Equal(t, 0.6, v)
	})

	t.Run("marine group nested under hourly", func(t *testing.T) {
		payload := []byte(`{
			"hourly": {
				"time": ["2026-08-29T08:00"],
				"wind_speed_10m": [8],
				"marine": {
					"time": ["2026-08-29T08:00"],
					"hs": [0.4],
					"tp": [6.0]
				}
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		v, ok := value(s.WaveHeight, 0)
		require.True(t, ok)
		assert.Equal(t, 0.4, v)
		v, ok = value(s.WavePeriod, 0)
		require.True(t, ok)
		assert.Equal(t, 6.0, v)
	})

	t.Run("top level marine and ecmwf groups", func(t *testing.T) {
		payload := []byte(`{
			"ecmwf": {
				"time": ["2026-08-29T08:00"],
				"wind_speed_10m": [15]
			},
			"marine": {
				"hs": [0.7]
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		assert.Equal(t, 1, s.Len())
		v, ok := value(s.WindSpeed, 0)
		require.True(t, ok)
		assert.Equal(t, 15.0, v)
		v, ok = value(s.WaveHeight, 0)
		require.True(t, ok)
		assert.Equal(t, 0.7, v)
	})

	t.Run("visibility meters normalized per scalar", func(t *testing.T) {
		payload := []byte(`{
			"hourly": {
				"time": ["2026-08-29T08:00", "2026-08-29T09:00", "2026-08-29T10:00"],
				"visibility": [8000, 12, null]
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		v, ok := value(s.Visibility, 0)
		require.True(t, ok)
		assert.Equal(t, 8.0, v)

		// Already in km, left alone.
		v, ok = value(s.Visibility, 1)
		require.True(t, ok)
		assert.Equal(t, 12.0, v)

		_, ok = value(s.Visibility, 2)
		assert.False(t, ok)
	})

	t.Run("null samples read as absent", func(t *testing.T) {
		payload := []byte(`{
			"hourly": {
				"time": ["2026-08-29T08:00", "2026-08-29T09:00"],
				"wind_speed_10m": [null, 14]
			}
		}`)

		s, _, err := ExtractSeries(payload)
		require.NoError(t, err)

		_, ok := value(s.WindSpeed, 0)
		assert.False(t, ok)
		v, ok := value(s.WindSpeed, 1)
		require.True(t, ok)
		assert.Equal(t, 14.0, v)
	})

	t.Run("meta fallbacks", func(t *testing.T) {
		payload := []byte(`{
			"meta": {"site_name": "Ghar el Melh", "timezone": "Africa/Tunis"},
			"hourly": {"time": ["2026-08-29T08:00"]}
		}`)

		_, meta, err := ExtractSeries(payload)
		require.NoError(t, err)
		assert.Equal(t, "Ghar el Melh", meta.Name)
		assert.Equal(t, "Africa/Tunis", meta.TZ)
	})

	t.Run("missing time axis", func(t *testing.T) {
		_, _, err := ExtractSeries([]byte(`{"hourly": {"wind_speed_10m": [10]}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "time axis")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, _, err := ExtractSeries([]byte(`{not json`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode spot payload")
	})

	t.Run("absent channels stay nil", func(t *testing.T) {
		s, _, err := ExtractSeries([]byte(`{"hourly": {"time": ["2026-08-29T08:00"]}}`))
		require.NoError(t, err)
		assert.Nil(t, s.WindSpeed)
		assert.Nil(t, s.WaveHeight)
		assert.Nil(t, s.Visibility)
	})
}
