package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/seawindow/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "public", cfg.FeedDir)
	assert.Empty(t, cfg.FeedURL)
	assert.Equal(t, "coastal", cfg.Variant)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Empty(t, cfg.Spots)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "spot-verdicts", cfg.KafkaVerdictTopic)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPolicy(domain.VariantCoastal), p)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VARIANT", "classic")
	t.Setenv("SPOTS", "gammarth-port,el-haouaria")
	t.Setenv("WIND_HARD_MIN", "28")
	t.Setenv("DAYLIGHT_END", "20:30")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("CONCURRENCY", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"gammarth-port", "el-haouaria"}, cfg.Spots)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, domain.VariantClassic, p.Variant)
	assert.Equal(t, 28.0, p.Family.WindHard)
	assert.Equal(t, 20*60+30, p.DaylightEndMin)
	assert.Equal(t, 3, p.SegmentHours())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("unknown variant", func(t *testing.T) {
		t.Setenv("VARIANT", "pelagic")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown variant")
	})

	t.Run("hard cap below soft cap", func(t *testing.T) {
		t.Setenv("WIND_HARD_MIN", "10")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wind hard cap")
	})

	t.Run("bad daylight clock", func(t *testing.T) {
		t.Setenv("DAYLIGHT_START", "8am")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DAYLIGHT_START")
	})

	t.Run("inverted daylight window", func(t *testing.T) {
		t.Setenv("DAYLIGHT_START", "22:00")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "daylight window")
	})

	t.Run("zero concurrency", func(t *testing.T) {
		t.Setenv("CONCURRENCY", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONCURRENCY")
	})

	t.Run("non-positive interval", func(t *testing.T) {
		t.Setenv("RUN_INTERVAL", "0s")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RUN_INTERVAL")
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 8 * 60, false},
		{"21:00", 21 * 60, false},
		{"00:00", 0, false},
		{"24:00", 24 * 60, false},
		{"20:30", 20*60 + 30, false},
		{"24:30", 0, true},
		{"25:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
