package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/coastwatch/seawindow/internal/domain"
)

// Config holds all service settings, populated from environment variables.
// Every numeric rule threshold is an independent setting so boundary values
// can be exercised without rebuilding.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Feed source: FEED_URL wins over FEED_DIR when both are set.
	FeedDir       string        `envconfig:"FEED_DIR" default:"public"`
	FeedURL       string        `envconfig:"FEED_URL"`
	FeedTimeout   time.Duration `envconfig:"FEED_TIMEOUT" default:"25s"`
	FeedCacheSize int           `envconfig:"FEED_CACHE_SIZE" default:"64"`
	FeedCacheTTL  time.Duration `envconfig:"FEED_CACHE_TTL" default:"10m"`

	// Batch reporting. An empty SPOTS list means the registry defaults.
	Spots       []string      `envconfig:"SPOTS"`
	Variant     string        `envconfig:"VARIANT" default:"coastal"`
	Concurrency int           `envconfig:"CONCURRENCY" default:"1"`
	RunInterval time.Duration `envconfig:"RUN_INTERVAL" default:"30m"`

	// Optional verdict publishing. Enabled when brokers are set.
	KafkaBrokers      []string `envconfig:"KAFKA_BROKERS"`
	KafkaVerdictTopic string   `envconfig:"KAFKA_VERDICT_TOPIC" default:"spot-verdicts"`

	// Family thresholds.
	WindSoftMax float64 `envconfig:"WIND_SOFT_MAX" default:"20"`
	WindHardMin float64 `envconfig:"WIND_HARD_MIN" default:"25"`
	WaveSoftMax float64 `envconfig:"WAVE_SOFT_MAX" default:"0.5"`
	WaveHardMin float64 `envconfig:"WAVE_HARD_MIN" default:"0.8"`

	// Expert thresholds (classic variant only).
	ExpertWindSoftMax float64 `envconfig:"EXPERT_WIND_SOFT_MAX" default:"25"`
	ExpertWindHardMin float64 `envconfig:"EXPERT_WIND_HARD_MIN" default:"30"`
	ExpertWaveSoftMax float64 `envconfig:"EXPERT_WAVE_SOFT_MAX" default:"0.8"`
	ExpertWaveHardMin float64 `envconfig:"EXPERT_WAVE_HARD_MIN" default:"1.2"`

	// Hazard overrides (coastal variant).
	GustHardMin     float64 `envconfig:"GUST_HARD_MIN" default:"30"`
	SquallDelta     float64 `envconfig:"SQUALL_DELTA" default:"15"`
	ThunderCodes    []int   `envconfig:"THUNDER_CODES" default:"95,96,99"`
	MinVisibilityKm float64 `envconfig:"MIN_VISIBILITY_KM" default:"5"`

	OnshoreDegradeMin float64 `envconfig:"ONSHORE_DEGRADE_MIN" default:"20"`

	// Daylight window, local wall clock.
	DaylightStart string `envconfig:"DAYLIGHT_START" default:"08:00"`
	DaylightEnd   string `envconfig:"DAYLIGHT_END" default:"21:00"`

	// Corridor legs for the classic segment length.
	OutboundLegHours float64 `envconfig:"OUTBOUND_LEG_HOURS" default:"1"`
	AnchorLegHours   float64 `envconfig:"ANCHOR_LEG_HOURS" default:"1"`
	ReturnLegHours   float64 `envconfig:"RETURN_LEG_HOURS" default:"1"`
	// Flat minimum for the coastal segment length.
	MinWindowHours int `envconfig:"MIN_WINDOW_HOURS" default:"4"`

	// Wave-period coupling (coastal variant).
	PeriodMinBelowHs04   float64 `envconfig:"PERIOD_MIN_BELOW_HS04" default:"4.0"`
	PeriodMinHs04To05    float64 `envconfig:"PERIOD_MIN_HS04_TO_05" default:"4.5"`
	ShortSteepHs         float64 `envconfig:"SHORT_STEEP_HS" default:"0.5"`
	ShortSteepPeriod     float64 `envconfig:"SHORT_STEEP_PERIOD" default:"6.0"`
	ShortSteepHardHs     float64 `envconfig:"SHORT_STEEP_HARD_HS" default:"0.6"`
	ShortSteepHardPeriod float64 `envconfig:"SHORT_STEEP_HARD_PERIOD" default:"5.0"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates the resulting rule policy.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.RunInterval <= 0 {
		return nil, errors.New("RUN_INTERVAL must be positive")
	}
	if cfg.Concurrency < 1 {
		return nil, errors.New("CONCURRENCY must be at least 1")
	}
	if cfg.FeedURL == "" && cfg.FeedDir == "" {
		return nil, errors.New("one of FEED_URL or FEED_DIR is required")
	}

	// Policy construction performs the threshold validation.
	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// KafkaEnabled reports whether verdict publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Policy assembles the immutable rule configuration for the evaluator.
func (c *Config) Policy() (domain.Policy, error) {
	variant, err := domain.ParseVariant(c.Variant)
	if err != nil {
		return domain.Policy{}, err
	}

	startMin, err := parseClock(c.DaylightStart)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("DAYLIGHT_START: %w", err)
	}
	endMin, err := parseClock(c.DaylightEnd)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("DAYLIGHT_END: %w", err)
	}

	p := domain.Policy{
		Variant: variant,
		Family: domain.Limits{
			WindSoft: c.WindSoftMax, WindHard: c.WindHardMin,
			WaveSoft: c.WaveSoftMax, WaveHard: c.WaveHardMin,
		},
		Expert: domain.Limits{
			WindSoft: c.ExpertWindSoftMax, WindHard: c.ExpertWindHardMin,
			WaveSoft: c.ExpertWaveSoftMax, WaveHard: c.ExpertWaveHardMin,
		},
		GustHard:             c.GustHardMin,
		SquallDelta:          c.SquallDelta,
		ThunderCodes:         c.ThunderCodes,
		MinVisibilityKm:      c.MinVisibilityKm,
		OnshoreMin:           c.OnshoreDegradeMin,
		DaylightStartMin:     startMin,
		DaylightEndMin:       endMin,
		LegHours:             [3]float64{c.OutboundLegHours, c.AnchorLegHours, c.ReturnLegHours},
		MinWindowHours:       c.MinWindowHours,
		PeriodMinBelowHs04:   c.PeriodMinBelowHs04,
		PeriodMinHs04To05:    c.PeriodMinHs04To05,
		ShortSteepHs:         c.ShortSteepHs,
		ShortSteepPeriod:     c.ShortSteepPeriod,
		ShortSteepHardHs:     c.ShortSteepHardHs,
		ShortSteepHardPeriod: c.ShortSteepHardPeriod,
	}
	if err := p.Validate(); err != nil {
		return domain.Policy{}, err
	}
	return p, nil
}

// parseClock converts "HH:MM" to minutes of day. "24:00" is accepted as the
// end-of-day bound.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q (want HH:MM)", s)
	}
	hh, errH := strconv.Atoi(parts[0])
	mm, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hh < 0 || hh > 24 || mm < 0 || mm > 59 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("invalid clock value %q (want HH:MM)", s)
	}
	return hh*60 + mm, nil
}
