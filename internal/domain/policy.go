package domain

import (
	"fmt"
	"math"
)

// Variant names one of the two rule generations the advisor can run.
type Variant string

const (
	// VariantClassic is the original policy: family and expert threshold
	// sets, fixed shoreline bearings, a corridor-derived 3 h segment, no
	// hazard overrides, and a daylight window inclusive of its upper bound.
	VariantClassic Variant = "classic"
	// VariantCoastal is the revised policy: family-only thresholds, per-spot
	// onshore sector tables, a flat 4 h segment, hazard overrides (thunder,
	// visibility, gusts, squalls) plus wave-period coupling, and a daylight
	// window exclusive of its upper bound.
	VariantCoastal Variant = "coastal"
)

// ParseVariant validates a variant name from configuration.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantClassic, VariantCoastal:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantClassic, VariantCoastal)
}

// Class selects a threshold set. Expert only exists in the classic variant.
type Class string

const (
	ClassFamily Class = "family"
	ClassExpert Class = "expert"
)

// Limits is one activity class's wind and wave caps. Soft caps degrade a
// window; hard caps are absolute no-gos.
type Limits struct {
	WindSoft float64 // km/h, exceeded strictly
	WindHard float64 // km/h, reached inclusively
	WaveSoft float64 // m, exceeded strictly
	WaveHard float64 // m, reached inclusively
}

// Policy is the full immutable rule configuration handed to an Evaluator.
// Every numeric constant of the rule engine lives here so tests and
// deployments can override any of them independently.
type Policy struct {
	Variant Variant

	Family Limits
	Expert Limits

	// Hazard overrides (coastal variant).
	GustHard        float64 // km/h, inclusive
	SquallDelta     float64 // km/h gust-over-wind differential, inclusive
	ThunderCodes    []int   // WMO weather codes treated as thunderstorms
	MinVisibilityKm float64

	// Onshore degrade: wind above the soft cap from an onshore direction at
	// or above this speed produces the onshore failure message.
	OnshoreMin float64

	// Daylight window in minutes of local day. The classic variant treats
	// DaylightEndMin inclusively, the coastal variant exclusively.
	DaylightStartMin int
	DaylightEndMin   int

	// Corridor legs (outbound, anchor, return) in hours; each leg occupies
	// at least one whole hour. Classic derives its segment length from these.
	LegHours [3]float64
	// Flat minimum segment length used by the coastal variant.
	MinWindowHours int

	// Wave-period coupling and short/steep sea rules (coastal variant).
	PeriodMinBelowHs04   float64 // s, required when Hs < 0.4
	PeriodMinHs04To05    float64 // s, required when 0.4 <= Hs < 0.5
	ShortSteepHs         float64 // m
	ShortSteepPeriod     float64 // s
	ShortSteepHardHs     float64 // m
	ShortSteepHardPeriod float64 // s
}

// DefaultPolicy returns the operational thresholds for a variant.
func DefaultPolicy(v Variant) Policy {
	return Policy{
		Variant:              v,
		Family:               Limits{WindSoft: 20, WindHard: 25, WaveSoft: 0.5, WaveHard: 0.8},
		Expert:               Limits{WindSoft: 25, WindHard: 30, WaveSoft: 0.8, WaveHard: 1.2},
		GustHard:             30,
		SquallDelta:          15,
		ThunderCodes:         []int{95, 96, 99},
		MinVisibilityKm:      5,
		OnshoreMin:           20,
		DaylightStartMin:     8 * 60,
		DaylightEndMin:       21 * 60,
		LegHours:             [3]float64{1, 1, 1},
		MinWindowHours:       4,
		PeriodMinBelowHs04:   4.0,
		PeriodMinHs04To05:    4.5,
		ShortSteepHs:         0.5,
		ShortSteepPeriod:     6.0,
		ShortSteepHardHs:     0.6,
		ShortSteepHardPeriod: 5.0,
	}
}

// Validate checks the invariants the rule chain depends on.
func (p Policy) Validate() error {
	if _, err := ParseVariant(string(p.Variant)); err != nil {
		return err
	}
	if err := p.Family.validate("family"); err != nil {
		return err
	}
	if err := p.Expert.validate("expert"); err != nil {
		return err
	}
	if p.DaylightStartMin < 0 || p.DaylightEndMin > 24*60 || p.DaylightStartMin >= p.DaylightEndMin {
		return fmt.Errorf("daylight window [%d, %d) is not a valid minutes-of-day interval",
			p.DaylightStartMin, p.DaylightEndMin)
	}
	if p.SegmentHours() < 1 {
		return fmt.Errorf("segment length must be at least one hour")
	}
	return nil
}

func (l Limits) validate(class string) error {
	if l.WindHard < l.WindSoft {
		return fmt.Errorf("%s wind hard cap %g below soft cap %g", class, l.WindHard, l.WindSoft)
	}
	if l.WaveHard < l.WaveSoft {
		return fmt.Errorf("%s wave hard cap %g below soft cap %g", class, l.WaveHard, l.WaveSoft)
	}
	return nil
}

// SegmentHours is the minimum contiguous run of valid hours for a window.
// Classic derives it from the corridor legs; coastal uses the flat minimum.
func (p Policy) SegmentHours() int {
	if p.Variant == VariantClassic {
		total := 0
		for _, leg := range p.LegHours {
			h := int(math.Ceil(leg))
			if h < 1 {
				h = 1
			}
			total += h
		}
		return total
	}
	return p.MinWindowHours
}

// inclusiveDaylightEnd reports whether a sample exactly at DaylightEndMin
// still counts as daylight. The two variants genuinely disagree here and the
// difference is preserved as observable behavior.
func (p Policy) inclusiveDaylightEnd() bool {
	return p.Variant == VariantClassic
}

func (p Policy) limits(class Class) Limits {
	if class == ClassExpert {
		return p.Expert
	}
	return p.Family
}

func (p Policy) isThunderCode(code int) bool {
	for _, c := range p.ThunderCodes {
		if c == code {
			return true
		}
	}
	return false
}
