// Command genfeed writes synthetic collector payloads for each registered
// spot, in the exact shape the advisor consumes. It runs the generated JSON
// back through the actual extraction code so a fixture that would not parse
// in production cannot be written.
//
// Usage:
//
//	go run ./cmd/genfeed -out public -hours 48
//	go run ./cmd/genfeed -out testdata/feeds -start 2026-08-29T00:00 -calm
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coastwatch/seawindow/internal/domain"
	"github.com/coastwatch/seawindow/internal/spots"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "public", "output directory for <slug>.json feeds")
	hours := flag.Int("hours", 48, "number of hourly samples per spot")
	start := flag.String("start", "", "first sample timestamp, local naive ISO (default: today 00:00)")
	spotList := flag.String("spots", "", "comma-separated slugs (default: the full registry)")
	calm := flag.Bool("calm", false, "generate uniformly calm conditions (every window passes)")
	flag.Parse()

	if *hours < 1 {
		return fmt.Errorf("-hours must be at least 1")
	}

	first, err := firstSample(*start)
	if err != nil {
		return err
	}

	slugs := spots.DefaultSlugs()
	if *spotList != "" {
		slugs = strings.Split(*spotList, ",")
	}

	for _, slug := range slugs {
		spot := spots.Lookup(slug)
		payload, err := buildPayload(spot, first, *hours, *calm)
		if err != nil {
			return fmt.Errorf("building %s: %w", spot.Slug, err)
		}
		path := filepath.Join(*out, spot.Slug+".json")
		if err := writeJSON(path, payload); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("wrote %s (%d samples)", path, *hours)
	}
	return nil
}

func firstSample(start string) (time.Time, error) {
	if start == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02T15:04", start)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing -start: %w", err)
	}
	return t, nil
}

// feedPayload mirrors the collector's on-disk schema: site metadata plus a
// flat hourly object and a nested marine group for the sea-state channels.
type feedPayload struct {
	Meta struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
		TZ   string `json:"tz"`
	} `json:"meta"`
	Hourly map[string]any `json:"hourly"`
}

func buildPayload(spot spots.Spot, first time.Time, hours int, calm bool) (feedPayload, error) {
	times := make([]string, hours)
	windSpeed := make([]float64, hours)
	windGusts := make([]float64, hours)
	windDir := make([]float64, hours)
	waveHeight := make([]float64, hours)
	wavePeriod := make([]float64, hours)
	weatherCode := make([]float64, hours)
	visibility := make([]float64, hours)

	// Per-spot phase keeps the five fixture files distinguishable without
	// a random source creeping into test data.
	phase := float64(len(spot.Slug)%7) * 0.9

	for i := 0; i < hours; i++ {
		ts := first.Add(time.Duration(i) * time.Hour)
		times[i] = ts.Format("2006-01-02T15:04")

		h := float64(i)
		if calm {
			windSpeed[i] = round1(8 + 3*math.Sin(h/6+phase))
			waveHeight[i] = round2(0.2 + 0.1*math.Abs(math.Sin(h/8+phase)))
		} else {
			// A diurnal sea-breeze cycle that crosses the family limits
			// during the afternoon, so reports show both outcomes.
			windSpeed[i] = round1(12 + 10*math.Sin((h-6)/24*2*math.Pi+phase))
			waveHeight[i] = round2(0.4 + 0.5*math.Abs(math.Sin(h/12+phase)))
		}
		windGusts[i] = round1(windSpeed[i] * 1.3)
		windDir[i] = math.Mod(spot.Shoreline+120*math.Sin(h/9+phase)+360, 360)
		wavePeriod[i] = round1(5 + 2*math.Sin(h/10+phase))
		weatherCode[i] = 1
		// Meters on purpose: exercises the km normalization downstream.
		visibility[i] = 24140
	}

	var p feedPayload
	p.Meta.Name = spot.Name
	p.Meta.Slug = spot.Slug
	p.Meta.TZ = spot.TZ
	p.Hourly = map[string]any{
		"time":               times,
		"wind_speed_10m":     windSpeed,
		"wind_gusts_10m":     windGusts,
		"wind_direction_10m": windDir,
		"weather_code":       weatherCode,
		"visibility":         visibility,
		"marine": map[string]any{
			"time": times,
			"hs":   waveHeight,
			"tp":   wavePeriod,
		},
	}

	// Round-trip through the real extractor so a schema drift here fails the
	// generator instead of silently producing unreadable fixtures.
	data, err := json.Marshal(p)
	if err != nil {
		return feedPayload{}, err
	}
	series, _, err := domain.ExtractSeries(data)
	if err != nil {
		return feedPayload{}, err
	}
	if series.Len() != hours {
		return feedPayload{}, fmt.Errorf("extraction returned %d samples, want %d", series.Len(), hours)
	}
	return p, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
