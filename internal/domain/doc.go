// Package domain implements the go/no-go window rule engine for small-boat
// and watersports outings.
//
// # Data Source
//
// Hourly forecast series come from per-spot JSON feeds written by the upstream
// collector, which merges an Open-Meteo ECMWF forecast (wind, gusts,
// direction, weather code, visibility) with the Open-Meteo Marine forecast
// (wave height, wave period) for each spot. The collector has changed its
// output layout over time: flat "hourly" arrays, arrays nested under
// "hourly.ecmwf" / "hourly.marine", and top-level duplicates all exist in the
// wild, so [ExtractSeries] resolves each channel through an ordered alias
// list across all of those locations.
//
// # Units and normalization
//
//	wind_speed, wind_gusts  km/h
//	wind_direction          degrees, 0-360, direction the wind blows FROM
//	wave_height (hs)        meters
//	wave_period (tp)        seconds
//	weather_code            WMO code; 95/96/99 are thunderstorms
//	visibility              km after normalization; raw scalars >= 50 are
//	                        meters (50+ km of visibility is implausible) and
//	                        are divided by 1000
//
// Timestamps are local ISO strings, usually without an offset; they are
// interpreted in the spot's time zone by [LocalMinute]. Any value that fails
// to parse disqualifies its sample rather than raising: the engine prefers
// missing a window over proposing a doubtful one.
//
// # Variants
//
// Two rule generations are kept as selectable [Variant] values rather than
// merged, because they disagree on observable behavior:
//
//	classic  family+expert threshold sets, shoreline-bearing onshore test,
//	         3 h corridor segment (outbound/anchor/return legs), daylight
//	         upper bound INCLUSIVE, no hazard rules
//	coastal  family-only, per-spot onshore sector tables, flat 4 h segment,
//	         daylight upper bound EXCLUSIVE, hazard rules (thunderstorm,
//	         visibility, gusts, squalls) and Hs/Tp coupling
//
// # Evaluation
//
// [Evaluator.Evaluate] slides a segment-length window left to right and
// decides on the first candidate whose samples all fall in daylight; within
// it, samples are scanned left to right through the fixed rule chain and the
// first violation wins. Failure messages are written in French, the locale of
// the configured spots, and embed the sample timestamp, the value, and the
// threshold. Wave heights are always formatted with two decimals.
package domain
