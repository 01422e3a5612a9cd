package domain

import (
	"fmt"
	"strconv"
)

// Failure describes the first rule violation found in a candidate window, or
// the absence of any evaluable window. Message is the operator-facing text in
// the spots' locale; the other fields exist for structured consumers.
type Failure struct {
	Rule      string  `json:"rule"`
	Index     int     `json:"index"`
	Time      string  `json:"time,omitempty"`
	Quantity  string  `json:"quantity,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Message   string  `json:"message"`
}

// rule is one independent predicate of the evaluation chain. check returns
// nil when the sample cannot fail this rule, including when the backing
// channel is absent for that sample.
type rule struct {
	name  string
	check func(s Series, i int) *Failure
}

// rules builds the ordered chain for one activity class. The order is fixed
// and first match wins: thunderstorm, visibility, gusts, squalls, wind hard,
// wave hard, wind soft (onshore-aware), wave soft, then the wave-period
// rules. The classic variant carries no hazard or wave-period rules.
func (p Policy) rules(class Class, onshore Classifier) []rule {
	limits := p.limits(class)

	var chain []rule
	if p.Variant == VariantCoastal {
		chain = append(chain,
			rule{"thunderstorm", p.checkThunder},
			rule{"visibility", p.checkVisibility},
			rule{"gust", p.checkGust},
			rule{"squall", p.checkSquall},
		)
	}
	chain = append(chain,
		rule{"wind_hard", checkWindHard(limits)},
		rule{"wave_hard", checkWaveHard(limits)},
		rule{"wind_soft", p.checkWindSoft(limits, onshore)},
		rule{"wave_soft", checkWaveSoft(limits)},
	)
	if p.Variant == VariantCoastal {
		chain = append(chain,
			rule{"wave_period", p.checkWavePeriod},
			rule{"short_steep", p.checkShortSteep},
		)
	}
	return chain
}

func (p Policy) checkThunder(s Series, i int) *Failure {
	v, ok := value(s.WeatherCode, i)
	if !ok || !p.isThunderCode(int(v)) {
		return nil
	}
	code := int(v)
	return &Failure{
		Rule: "thunderstorm", Index: i, Time: s.Times[i],
		Quantity: "weather_code", Value: float64(code),
		Message: fmt.Sprintf("%s : orage annoncé (code %d)", s.Times[i], code),
	}
}

func (p Policy) checkVisibility(s Series, i int) *Failure {
	v, ok := value(s.Visibility, i)
	if !ok || v >= p.MinVisibilityKm {
		return nil
	}
	return &Failure{
		Rule: "visibility", Index: i, Time: s.Times[i],
		Quantity: "visibility", Value: v, Threshold: p.MinVisibilityKm,
		Message: fmt.Sprintf("%s : visibilité %s km < %s km", s.Times[i], fmtNum(v), fmtNum(p.MinVisibilityKm)),
	}
}

func (p Policy) checkGust(s Series, i int) *Failure {
	v, ok := value(s.WindGusts, i)
	if !ok || v < p.GustHard {
		return nil
	}
	return &Failure{
		Rule: "gust", Index: i, Time: s.Times[i],
		Quantity: "wind_gusts", Value: v, Threshold: p.GustHard,
		Message: fmt.Sprintf("%s : rafales %s ≥ %s km/h", s.Times[i], fmtNum(v), fmtNum(p.GustHard)),
	}
}

func (p Policy) checkSquall(s Series, i int) *Failure {
	gust, okG := value(s.WindGusts, i)
	wind, okW := value(s.WindSpeed, i)
	if !okG || !okW || gust-wind < p.SquallDelta {
		return nil
	}
	return &Failure{
		Rule: "squall", Index: i, Time: s.Times[i],
		Quantity: "gust_differential", Value: gust - wind, Threshold: p.SquallDelta,
		Message: fmt.Sprintf("%s : grains, rafales %s - vent %s ≥ %s km/h",
			s.Times[i], fmtNum(gust), fmtNum(wind), fmtNum(p.SquallDelta)),
	}
}

func checkWindHard(l Limits) func(Series, int) *Failure {
	return func(s Series, i int) *Failure {
		v, ok := value(s.WindSpeed, i)
		if !ok || v < l.WindHard {
			return nil
		}
		return &Failure{
			Rule: "wind_hard", Index: i, Time: s.Times[i],
			Quantity: "wind_speed", Value: v, Threshold: l.WindHard,
			Message: fmt.Sprintf("%s : vent %s ≥ %s km/h", s.Times[i], fmtNum(v), fmtNum(l.WindHard)),
		}
	}
}

func checkWaveHard(l Limits) func(Series, int) *Failure {
	return func(s Series, i int) *Failure {
		v, ok := value(s.WaveHeight, i)
		if !ok || v < l.WaveHard {
			return nil
		}
		return &Failure{
			Rule: "wave_hard", Index: i, Time: s.Times[i],
			Quantity: "wave_height", Value: v, Threshold: l.WaveHard,
			Message: fmt.Sprintf("%s : houle %s m ≥ %s m", s.Times[i], fmtWave(v), fmtWave(l.WaveHard)),
		}
	}
}

// checkWindSoft degrades a window on wind above the soft cap. When the
// direction is onshore and the speed has reached the onshore threshold the
// message names the onshore condition instead of the generic cap.
func (p Policy) checkWindSoft(l Limits, onshore Classifier) func(Series, int) *Failure {
	return func(s Series, i int) *Failure {
		v, ok := value(s.WindSpeed, i)
		if !ok || v <= l.WindSoft {
			return nil
		}
		if dir, okD := value(s.WindDir, i); okD && onshore != nil && onshore.Onshore(dir) && v >= p.OnshoreMin {
			return &Failure{
				Rule: "wind_onshore", Index: i, Time: s.Times[i],
				Quantity: "wind_speed", Value: v, Threshold: p.OnshoreMin,
				Message: fmt.Sprintf("%s : vent onshore %s ≥ %s km/h", s.Times[i], fmtNum(v), fmtNum(p.OnshoreMin)),
			}
		}
		return &Failure{
			Rule: "wind_soft", Index: i, Time: s.Times[i],
			Quantity: "wind_speed", Value: v, Threshold: l.WindSoft,
			Message: fmt.Sprintf("%s : vent %s > %s km/h", s.Times[i], fmtNum(v), fmtNum(l.WindSoft)),
		}
	}
}

func checkWaveSoft(l Limits) func(Series, int) *Failure {
	return func(s Series, i int) *Failure {
		v, ok := value(s.WaveHeight, i)
		if !ok || v <= l.WaveSoft {
			return nil
		}
		return &Failure{
			Rule: "wave_soft", Index: i, Time: s.Times[i],
			Quantity: "wave_height", Value: v, Threshold: l.WaveSoft,
			Message: fmt.Sprintf("%s : houle %s m > %s m", s.Times[i], fmtWave(v), fmtWave(l.WaveSoft)),
		}
	}
}

// checkWavePeriod enforces the Hs/Tp coupling: small waves with a very short
// period indicate chop rather than swell. Skipped when either channel is absent.
func (p Policy) checkWavePeriod(s Series, i int) *Failure {
	hs, okH := value(s.WaveHeight, i)
	tp, okT := value(s.WavePeriod, i)
	if !okH || !okT {
		return nil
	}
	switch {
	case hs < 0.4 && tp < p.PeriodMinBelowHs04:
		return wavePeriodFailure(s, i, hs, tp, p.PeriodMinBelowHs04)
	case hs >= 0.4 && hs < 0.5 && tp < p.PeriodMinHs04To05:
		return wavePeriodFailure(s, i, hs, tp, p.PeriodMinHs04To05)
	}
	return nil
}

func wavePeriodFailure(s Series, i int, hs, tp, minTp float64) *Failure {
	return &Failure{
		Rule: "wave_period", Index: i, Time: s.Times[i],
		Quantity: "wave_period", Value: tp, Threshold: minTp,
		Message: fmt.Sprintf("%s : houle %s m, période %s s < %s s",
			s.Times[i], fmtWave(hs), fmtNum(tp), fmtNum(minTp)),
	}
}

// checkShortSteep flags short, steep seas. The harder clause is tested first.
func (p Policy) checkShortSteep(s Series, i int) *Failure {
	hs, okH := value(s.WaveHeight, i)
	tp, okT := value(s.WavePeriod, i)
	if !okH || !okT {
		return nil
	}
	if hs >= p.ShortSteepHardHs && tp <= p.ShortSteepHardPeriod {
		return shortSteepFailure(s, i, hs, tp, p.ShortSteepHardHs, "mer très courte et raide")
	}
	if hs >= p.ShortSteepHs && tp <= p.ShortSteepPeriod {
		return shortSteepFailure(s, i, hs, tp, p.ShortSteepHs, "mer courte et raide")
	}
	return nil
}

func shortSteepFailure(s Series, i int, hs, tp, hsCap float64, label string) *Failure {
	return &Failure{
		Rule: "short_steep", Index: i, Time: s.Times[i],
		Quantity: "wave_height", Value: hs, Threshold: hsCap,
		Message: fmt.Sprintf("%s : %s, houle %s m, période %s s", s.Times[i], label, fmtWave(hs), fmtNum(tp)),
	}
}

// fmtNum renders a number in its natural representation (no trailing zeros).
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmtWave renders wave heights with exactly two decimals.
func fmtWave(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
