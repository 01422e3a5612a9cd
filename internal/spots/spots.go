// Package spots is the registry of known launch spots: onshore geometry,
// time zones, and slug normalization. The default set covers the gulf of
// Tunis and Cap Bon shoreline the collector publishes feeds for.
package spots

import (
	"strings"

	"github.com/coastwatch/seawindow/internal/domain"
)

// Spot describes one launch location's fixed geometry.
type Spot struct {
	Name string
	Slug string
	TZ   string
	// Shoreline is the shore-normal bearing used by the classic variant's
	// onshore test (degrees the onshore wind blows from, sector midpoint).
	Shoreline float64
	// Sectors are the onshore direction ranges (sea toward coast) used by
	// the coastal variant. Ranges may wrap through north.
	Sectors []domain.Sector
}

// Classifier returns the onshore strategy matching the policy variant.
func (s Spot) Classifier(v domain.Variant) domain.Classifier {
	if v == domain.VariantClassic {
		return domain.BearingClassifier{Shoreline: s.Shoreline}
	}
	return domain.SectorClassifier{Sectors: s.Sectors}
}

const defaultTZ = "Africa/Tunis"

// defaultSectors is the conservative fallback for spots not in the registry
// (gulf of Tunis exposure, slightly widened).
var defaultSectors = []domain.Sector{{Low: 20, High: 160}}

var registry = []Spot{
	// NW-SE bay of Tunis shoreline: onshore ~ 30-150 degrees.
	{Name: "Gammarth Port", Slug: "gammarth-port", TZ: defaultTZ, Shoreline: 90, Sectors: []domain.Sector{{Low: 30, High: 150}}},
	{Name: "Sidi Bou Saïd", Slug: "sidi-bou-said", TZ: defaultTZ, Shoreline: 90, Sectors: []domain.Sector{{Low: 30, High: 150}}},
	// NNE-SSE facing coast.
	{Name: "Ghar el Melh", Slug: "ghar-el-melh", TZ: defaultTZ, Shoreline: 70, Sectors: []domain.Sector{{Low: 10, High: 130}}},
	// Cap Bon east/northeast facade; sector wraps through north.
	{Name: "El Haouaria", Slug: "el-haouaria", TZ: defaultTZ, Shoreline: 20, Sectors: []domain.Sector{{Low: 330, High: 70}}},
	{Name: "Ras Fartass", Slug: "ras-fartass", TZ: defaultTZ, Shoreline: 20, Sectors: []domain.Sector{{Low: 330, High: 70}}},
	// Retired spots, kept so archived feeds still resolve.
	{Name: "Korbous", Slug: "korbous", TZ: defaultTZ, Shoreline: 90, Sectors: []domain.Sector{{Low: 30, High: 150}}},
	{Name: "Kélibia", Slug: "kelibia", TZ: defaultTZ, Shoreline: 20, Sectors: []domain.Sector{{Low: 330, High: 70}}},
}

// aliases maps historical slug spellings to their canonical registry slug.
var aliases = map[string]string{
	"gammarth":      "gammarth-port",
	"sidibousaid":   "sidi-bou-said",
	"sidi-bou":      "sidi-bou-said",
	"sidi-bou-saïd": "sidi-bou-said",
	"gharemelh":     "ghar-el-melh",
	"ghar-elmelh":   "ghar-el-melh",
	"haouaria":      "el-haouaria",
	"rasfartass":    "ras-fartass",
	"kélibia":       "kelibia",
}

// Normalize canonicalizes a spot identifier: lowercased, ".json" suffix
// stripped, punctuation and whitespace collapsed to single hyphens.
func Normalize(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	s = strings.TrimSuffix(s, ".json")

	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r > 127:
			// Accented letters stay (the alias table carries them).
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Lookup resolves a spot identifier to its registry entry. Unknown spots get
// the default geometry so evaluation still proceeds, with the normalized slug
// as the display name.
func Lookup(slug string) Spot {
	key := Normalize(slug)
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, s := range registry {
		if s.Slug == key {
			return s
		}
	}
	return Spot{
		Name:      key,
		Slug:      key,
		TZ:        defaultTZ,
		Shoreline: 90,
		Sectors:   defaultSectors,
	}
}

// DefaultSlugs lists the five active spots evaluated when no explicit list is
// configured, in reporting order.
func DefaultSlugs() []string {
	return []string{"gammarth-port", "sidi-bou-said", "ghar-el-melh", "el-haouaria", "ras-fartass"}
}
