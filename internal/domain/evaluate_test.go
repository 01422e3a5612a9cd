package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calmSeries builds n daylight samples that pass every rule.
func calmSeries(startHour, n int) Series {
	winds := make([]float64, n)
	waves := make([]float64, n)
	periods := make([]float64, n)
	for i := range winds {
		winds[i] = 10
		waves[i] = 0.3
		periods[i] = 6
	}
	return Series{
		Times:      hours(startHour, n),
		WindSpeed:  ch(winds...),
		WaveHeight: ch(waves...),
		WavePeriod: ch(periods...),
	}
}

func coastalEvaluator() *Evaluator {
	return NewEvaluator(DefaultPolicy(VariantCoastal))
}

func TestEvaluate(t *testing.T) {
	onshore := SectorClassifier{Sectors: []Sector{{Low: 30, High: 150}}}

	t.Run("calm four hour window succeeds", func(t *testing.T) {
		s := calmSeries(10, 4)
		s.WindSpeed = ch(10, 12, 15, 14)

		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		assert.True(t, v.OK)
		assert.Equal(t, "2026-08-29T10:00", v.Start)
		assert.Equal(t, "2026-08-29T13:00", v.End)
		assert.Nil(t, v.Failure)
		assert.Equal(t, "", v.Message())
	})

	t.Run("hard wind violation names the sample", func(t *testing.T) {
		s := calmSeries(10, 4)
		s.WindSpeed = ch(10, 12, 26, 14)

		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		require.NotNil(t, v.Failure)
		assert.Equal(t, "wind_hard", v.Failure.Rule)
		assert.Equal(t, 2, v.Failure.Index)
		assert.Equal(t, "2026-08-29T12:00 : vent 26 ≥ 25 km/h", v.Message())
	})

	t.Run("empty series reports no segment", func(t *testing.T) {
		v := coastalEvaluator().Evaluate(Series{}, time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "no_segment", v.Failure.Rule)
		assert.Equal(t, -1, v.Failure.Index)
		assert.Equal(t, "aucun créneau de 4 h entre 08:00 et 21:00", v.Message())
	})

	t.Run("series shorter than the segment reports no segment", func(t *testing.T) {
		v := coastalEvaluator().Evaluate(calmSeries(10, 3), time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "no_segment", v.Failure.Rule)
	})

	t.Run("earliest eligible window wins", func(t *testing.T) {
		// Hours 10..17 all calm; the window starting at 10:00 is reported
		// even though later starts would also pass.
		v := coastalEvaluator().Evaluate(calmSeries(10, 8), time.UTC, onshore, ClassFamily)
		require.True(t, v.OK)
		assert.Equal(t, "2026-08-29T10:00", v.Start)
		assert.Equal(t, "2026-08-29T13:00", v.End)
	})

	t.Run("first eligible window decides even when a later one would pass", func(t *testing.T) {
		s := calmSeries(10, 8)
		s.WindSpeed = ch(30, 10, 10, 10, 10, 10, 10, 10)

		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "wind_hard", v.Failure.Rule)
		assert.Equal(t, 0, v.Failure.Index)
	})

	t.Run("pre dawn samples are skipped", func(t *testing.T) {
		// Hours 5..12; the first window entirely inside daylight starts at 08:00.
		v := coastalEvaluator().Evaluate(calmSeries(5, 8), time.UTC, onshore, ClassFamily)
		require.True(t, v.OK)
		assert.Equal(t, "2026-08-29T08:00", v.Start)
		assert.Equal(t, "2026-08-29T11:00", v.End)
	})

	t.Run("absent channels never fail a window", func(t *testing.T) {
		s := Series{Times: hours(10, 4)}
		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		assert.True(t, v.OK)
	})

	t.Run("unparseable timestamp taints its windows", func(t *testing.T) {
		s := calmSeries(10, 4)
		s.Times[2] = "garbage"

		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "no_segment", v.Failure.Rule)
	})

	t.Run("rule values outside daylight are never inspected", func(t *testing.T) {
		// A storm at 05:00 must not leak into the verdict.
		s := calmSeries(5, 8)
		s.WindSpeed = ch(90, 90, 90, 10, 10, 10, 10, 10)

		v := coastalEvaluator().Evaluate(s, time.UTC, onshore, ClassFamily)
		assert.True(t, v.OK)
		assert.Equal(t, "2026-08-29T08:00", v.Start)
	})
}

func TestEvaluateDaylightEndBoundary(t *testing.T) {
	onshore := SectorClassifier{Sectors: []Sector{{Low: 30, High: 150}}}

	t.Run("coastal excludes the 21:00 sample", func(t *testing.T) {
		// Hours 18..21: the only four hour candidate touches 21:00.
		v := coastalEvaluator().Evaluate(calmSeries(18, 4), time.UTC, onshore, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "no_segment", v.Failure.Rule)
	})

	t.Run("coastal last valid window ends at 20:00", func(t *testing.T) {
		v := coastalEvaluator().Evaluate(calmSeries(17, 4), time.UTC, onshore, ClassFamily)
		require.True(t, v.OK)
		assert.Equal(t, "2026-08-29T20:00", v.End)
	})

	t.Run("classic includes the 21:00 sample", func(t *testing.T) {
		e := NewEvaluator(DefaultPolicy(VariantClassic))
		v := e.Evaluate(calmSeries(19, 3), time.UTC, BearingClassifier{Shoreline: 90}, ClassFamily)
		require.True(t, v.OK)
		assert.Equal(t, "2026-08-29T21:00", v.End)
	})

	t.Run("classic rejects past 21:00", func(t *testing.T) {
		e := NewEvaluator(DefaultPolicy(VariantClassic))
		v := e.Evaluate(calmSeries(20, 3), time.UTC, BearingClassifier{Shoreline: 90}, ClassFamily)
		require.False(t, v.OK)
		assert.Equal(t, "no_segment", v.Failure.Rule)
		assert.Equal(t, "aucun créneau de 3 h entre 08:00 et 21:00", v.Message())
	})
}

func TestEvaluateClasses(t *testing.T) {
	onshore := BearingClassifier{Shoreline: 90}
	e := NewEvaluator(DefaultPolicy(VariantClassic))

	// 22 km/h is above the family soft cap but below the expert one.
	s := calmSeries(10, 3)
	s.WindSpeed = ch(22, 22, 22)
	s.WindDir = ch(270, 270, 270)

	family := e.Evaluate(s, time.UTC, onshore, ClassFamily)
	require.False(t, family.OK)
	assert.Equal(t, "wind_soft", family.Failure.Rule)

	expert := e.Evaluate(s, time.UTC, onshore, ClassExpert)
	assert.True(t, expert.OK)
}

func TestFirstFailure(t *testing.T) {
	onshore := SectorClassifier{Sectors: []Sector{{Low: 30, High: 150}}}
	e := coastalEvaluator()

	assert.Nil(t, e.FirstFailure(calmSeries(10, 4), time.UTC, onshore, ClassFamily))

	s := calmSeries(10, 4)
	s.WaveHeight = ch(0.3, 0.9, 0.3, 0.3)
	f := e.FirstFailure(s, time.UTC, onshore, ClassFamily)
	require.NotNil(t, f)
	assert.Equal(t, "wave_hard", f.Rule)
	assert.Equal(t, "2026-08-29T11:00 : houle 0.90 m ≥ 0.80 m", f.Message)
}
