package domain

import (
	"fmt"
	"time"
)

// Evaluator runs the window search for one immutable Policy. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	policy Policy
}

// NewEvaluator creates an Evaluator. The policy must already be validated.
func NewEvaluator(policy Policy) *Evaluator {
	return &Evaluator{policy: policy}
}

// Policy returns the rule configuration the evaluator was built with.
func (e *Evaluator) Policy() Policy { return e.policy }

// Verdict is the reporting wrapper around a window search outcome.
type Verdict struct {
	OK      bool     `json:"ok"`
	Start   string   `json:"start,omitempty"` // first sample of the winning window
	End     string   `json:"end,omitempty"`   // last sample of the winning window
	Failure *Failure `json:"failure,omitempty"`
}

// Message returns the failure text, or the empty string on success.
func (v Verdict) Message() string {
	if v.Failure == nil {
		return ""
	}
	return v.Failure.Message
}

// FirstFailure slides a segment-length window over the series, earliest start
// first, and decides on the FIRST daylight-eligible candidate: it returns nil
// when that candidate passes every rule, or the first violation inside it.
// Candidates containing any sample outside the daylight window (or with an
// unparseable timestamp) are skipped without inspecting rule values. When no
// candidate is daylight-eligible at all, a "no segment" failure names the
// required length and the daylight bounds.
func (e *Evaluator) FirstFailure(s Series, loc *time.Location, onshore Classifier, class Class) *Failure {
	return e.Evaluate(s, loc, onshore, class).Failure
}

// Evaluate performs the window search and wraps the outcome into a Verdict
// carrying the winning window's bounds on success.
func (e *Evaluator) Evaluate(s Series, loc *time.Location, onshore Classifier, class Class) Verdict {
	seg := e.policy.SegmentHours()
	chain := e.policy.rules(class, onshore)

	for i := 0; i+seg <= s.Len(); i++ {
		if !e.allDaylight(s, loc, i, i+seg) {
			continue
		}
		for j := i; j < i+seg; j++ {
			for _, r := range chain {
				if f := r.check(s, j); f != nil {
					return Verdict{Failure: f}
				}
			}
		}
		return Verdict{OK: true, Start: s.Times[i], End: s.Times[i+seg-1]}
	}
	return Verdict{Failure: e.noSegment(seg)}
}

func (e *Evaluator) allDaylight(s Series, loc *time.Location, start, end int) bool {
	for i := start; i < end; i++ {
		mm, ok := LocalMinute(s.Times[i], loc)
		if !ok {
			return false
		}
		if mm < e.policy.DaylightStartMin {
			return false
		}
		if e.policy.inclusiveDaylightEnd() {
			if mm > e.policy.DaylightEndMin {
				return false
			}
		} else if mm >= e.policy.DaylightEndMin {
			return false
		}
	}
	return true
}

func (e *Evaluator) noSegment(seg int) *Failure {
	return &Failure{
		Rule:  "no_segment",
		Index: -1,
		Message: fmt.Sprintf("aucun créneau de %d h entre %s et %s", seg,
			clockString(e.policy.DaylightStartMin), clockString(e.policy.DaylightEndMin)),
	}
}

func clockString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
