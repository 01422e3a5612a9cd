package domain

import (
	"encoding/json"
	"fmt"
)

// Channel name aliases, in resolution order. The collector has renamed fields
// across versions ("hs" vs "wave_height", suffixed vs plain wind names), so
// extraction tries each alias until one is present.
var (
	windSpeedAliases   = []string{"wind_speed_10m", "wind_speed", "windspeed_10m"}
	windGustsAliases   = []string{"wind_gusts_10m", "wind_gusts", "windgusts_10m"}
	windDirAliases     = []string{"wind_direction_10m", "wind_direction", "winddirection_10m"}
	waveHeightAliases  = []string{"hs", "wave_height", "significant_wave_height"}
	wavePeriodAliases  = []string{"tp", "wave_period"}
	weatherCodeAliases = []string{"weather_code", "weathercode"}
	visibilityAliases  = []string{"visibility_km", "visibility"}
)

// visibilityMetersMin is the heuristic cutoff for raw visibility values: the
// collector sometimes emits meters and sometimes km. A visibility of 50 km or
// more is meteorologically implausible, so any scalar >= 50 is taken as meters
// and divided by 1000.
const visibilityMetersMin = 50.0

type rawPayload struct {
	Meta struct {
		Name     string `json:"name"`
		SiteName string `json:"site_name"`
		Slug     string `json:"slug"`
		TZ       string `json:"tz"`
		Timezone string `json:"timezone"`
	} `json:"meta"`
	Hourly map[string]json.RawMessage `json:"hourly"`
	ECMWF  map[string]json.RawMessage `json:"ecmwf"`
	Marine map[string]json.RawMessage `json:"marine"`
}

// ExtractSeries maps a collector payload to the canonical Series. Channels are
// resolved first against the flat "hourly" object, then against the nested
// "hourly.ecmwf" / "hourly.marine" groups, then against the top-level
// duplicates the collector also writes. A channel that resolves nowhere is
// simply absent; only an undecodable payload or a missing time axis is an error.
func ExtractSeries(payload []byte) (Series, Meta, error) {
	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Series{}, Meta{}, fmt.Errorf("decode spot payload: %w", err)
	}

	groups := channelGroups(raw)

	times := resolveTimes(groups)
	if times == nil {
		return Series{}, Meta{}, fmt.Errorf("spot payload has no hourly time axis")
	}

	s := Series{
		Times:       times,
		WindSpeed:   resolveChannel(groups, windSpeedAliases),
		WindGusts:   resolveChannel(groups, windGustsAliases),
		WindDir:     resolveChannel(groups, windDirAliases),
		WaveHeight:  resolveChannel(groups, waveHeightAliases),
		WavePeriod:  resolveChannel(groups, wavePeriodAliases),
		WeatherCode: resolveChannel(groups, weatherCodeAliases),
		Visibility:  normalizeVisibility(resolveChannel(groups, visibilityAliases)),
	}

	meta := Meta{
		Name: raw.Meta.Name,
		Slug: raw.Meta.Slug,
		TZ:   raw.Meta.TZ,
	}
	if meta.Name == "" {
		meta.Name = raw.Meta.SiteName
	}
	if meta.TZ == "" {
		meta.TZ = raw.Meta.Timezone
	}

	return s, meta, nil
}

// channelGroups lists every object that may hold hourly arrays, in lookup order.
func channelGroups(raw rawPayload) []map[string]json.RawMessage {
	groups := make([]map[string]json.RawMessage, 0, 5)
	if raw.Hourly != nil {
		groups = append(groups, raw.Hourly)
		// Older collector builds nest the per-source arrays under hourly.
		for _, key := range []string{"ecmwf", "marine"} {
			if nested, ok := raw.Hourly[key]; ok {
				var group map[string]json.RawMessage
				if err := json.Unmarshal(nested, &group); err == nil {
					groups = append(groups, group)
				}
			}
		}
	}
	if raw.ECMWF != nil {
		groups = append(groups, raw.ECMWF)
	}
	if raw.Marine != nil {
		groups = append(groups, raw.Marine)
	}
	return groups
}

// resolveChannel returns the first alias that decodes as a numeric array in
// any group, or nil if none is present.
func resolveChannel(groups []map[string]json.RawMessage, aliases []string) []*float64 {
	for _, alias := range aliases {
		for _, group := range groups {
			msg, ok := group[alias]
			if !ok {
				continue
			}
			var ch []*float64
			if err := json.Unmarshal(msg, &ch); err != nil {
				continue
			}
			return ch
		}
	}
	return nil
}

func resolveTimes(groups []map[string]json.RawMessage) []string {
	for _, group := range groups {
		msg, ok := group["time"]
		if !ok {
			continue
		}
		var times []string
		if err := json.Unmarshal(msg, &times); err != nil {
			continue
		}
		return times
	}
	return nil
}

// normalizeVisibility converts meter-scaled samples to km. The unit decision
// is made per scalar so a mixed array still normalizes correctly.
func normalizeVisibility(ch []*float64) []*float64 {
	if ch == nil {
		return nil
	}
	out := make([]*float64, len(ch))
	for i, v := range ch {
		if v == nil {
			continue
		}
		km := *v
		if km >= visibilityMetersMin {
			km /= 1000.0
		}
		out[i] = &km
	}
	return out
}
