package domain

import "math"

// onshoreHalfWidth is the angular half-width of the onshore cone used by the
// bearing strategy: wind within 60 degrees of the shore-normal counts as
// blowing from sea toward shore.
const onshoreHalfWidth = 60.0

// Classifier decides whether a wind direction counts as onshore for a spot.
// Callers are responsible for absent directions: no direction, never onshore.
type Classifier interface {
	Onshore(deg float64) bool
}

// BearingClassifier implements the fixed shore-normal strategy: onshore means
// the circular difference between the wind direction and the shoreline
// bearing is strictly less than 60 degrees.
type BearingClassifier struct {
	Shoreline float64
}

func (c BearingClassifier) Onshore(deg float64) bool {
	diff := math.Mod(deg-c.Shoreline+540, 360) - 180
	return math.Abs(diff) < onshoreHalfWidth
}

// Sector is an inclusive [Low, High] degree range. Low > High denotes a range
// wrapping through north (e.g. 330..360 plus 0..70 expressed as {330, 70}).
type Sector struct {
	Low  int
	High int
}

func (s Sector) contains(deg float64) bool {
	if s.Low <= s.High {
		return float64(s.Low) <= deg && deg <= float64(s.High)
	}
	return deg >= float64(s.Low) || deg <= float64(s.High)
}

// SectorClassifier implements the per-spot angular table strategy: onshore
// means the direction falls in at least one sector. It generalizes the
// bearing strategy to asymmetric coastlines.
type SectorClassifier struct {
	Sectors []Sector
}

func (c SectorClassifier) Onshore(deg float64) bool {
	for _, s := range c.Sectors {
		if s.contains(deg) {
			return true
		}
	}
	return false
}
