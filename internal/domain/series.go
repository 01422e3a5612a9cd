package domain

// Series holds the aligned hourly channels for one spot. Channels other than
// Times are optional: a nil slice means the collector did not provide that
// quantity, and a nil element means the value is missing for that hour.
type Series struct {
	Times       []string
	WindSpeed   []*float64 // km/h
	WindGusts   []*float64 // km/h
	WindDir     []*float64 // degrees 0-360
	WaveHeight  []*float64 // m
	WavePeriod  []*float64 // s
	WeatherCode []*float64 // WMO code
	Visibility  []*float64 // km
}

// Len returns the number of hourly samples on the time axis.
func (s Series) Len() int { return len(s.Times) }

// value reads sample i of a channel, reporting presence. A nil channel, an
// out-of-range index, or a null sample all read as absent rather than failing.
func value(ch []*float64, i int) (float64, bool) {
	if i < 0 || i >= len(ch) || ch[i] == nil {
		return 0, false
	}
	return *ch[i], true
}

// Meta carries the spot identity attached to a collector payload.
type Meta struct {
	Name string
	Slug string
	TZ   string
}
