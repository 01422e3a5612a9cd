package domain

import "time"

// isoLayouts covers the timestamp shapes the collector emits: local ISO with
// or without seconds, with or without a UTC offset.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LoadLocation resolves a time zone name, falling back to UTC when the name
// is empty or unknown. It never fails; an unresolvable zone only makes the
// affected samples fail the daylight check.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalMinute converts a collector timestamp to minutes since local midnight
// in [0, 1439]. A timestamp without an offset is interpreted in loc; one with
// an offset is converted into loc. The boolean is false when the timestamp
// does not parse, which callers must treat as "not within daylight".
func LocalMinute(ts string, loc *time.Location) (int, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range isoLayouts {
		t, err := time.ParseInLocation(layout, ts, loc)
		if err != nil {
			continue
		}
		local := t.In(loc)
		return local.Hour()*60 + local.Minute(), true
	}
	return 0, false
}
