package schedule

import (
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
)

const (
	DefaultMatchMinutes = 90
	DefaultBreakMinutes = 10
)

// Slot returns the gap between two consecutive starts on one timeline.
func Slot(matchMinutes, breakMinutes int) time.Duration {
	matchMinutes, breakMinutes = normalizeDurations(matchMinutes, breakMinutes)
	return time.Duration(matchMinutes+breakMinutes) * time.Minute
}

// Distribute places every match on a single global timeline: match i starts
// at start + i*(duration+break) regardless of its field. Inputs are not mutated.
func Distribute(matches []match.Match, start time.Time, matchMinutes, breakMinutes int) []match.Match {
	out := make([]match.Match, len(matches))
	step := Slot(matchMinutes, breakMinutes)
	for i, m := range matches {
		at := start.Add(time.Duration(i) * step)
		m.ScheduledTime = &at
		out[i] = m
	}
	return out
}

// DistributePerField runs one timeline per field number. Matches keep their
// relative order, so the k-th match on a field starts at start + k*(duration+break).
func DistributePerField(matches []match.Match, start time.Time, matchMinutes, breakMinutes int) []match.Match {
	out := make([]match.Match, len(matches))
	step := Slot(matchMinutes, breakMinutes)
	next := make(map[int]int)
	for i, m := range matches {
		slot := next[m.FieldNumber]
		next[m.FieldNumber] = slot + 1
		at := start.Add(time.Duration(slot) * step)
		m.ScheduledTime = &at
		out[i] = m
	}
	return out
}

// AssignFields sets field ids by position, cycling over fieldIDs. Matches
// without a field number get the 1-based position of their field.
func AssignFields(matches []match.Match, fieldIDs []string) []match.Match {
	out := make([]match.Match, len(matches))
	copy(out, matches)
	if len(fieldIDs) == 0 {
		return out
	}
	for i := range out {
		idx := i % len(fieldIDs)
		out[i].FieldID = fieldIDs[idx]
		if out[i].FieldNumber == 0 {
			out[i].FieldNumber = idx + 1
		}
	}
	return out
}

func normalizeDurations(matchMinutes, breakMinutes int) (int, int) {
	if matchMinutes <= 0 {
		matchMinutes = DefaultMatchMinutes
	}
	if breakMinutes < 0 {
		breakMinutes = DefaultBreakMinutes
	}
	return matchMinutes, breakMinutes
}
