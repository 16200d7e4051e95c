package domain

import (
	"fmt"
	"time"
)

// SemesterWindow is a half-year period: Jan 1 - Jun 30 or Jul 1 - Dec 31.
// Both bounds are inclusive, End is the last second of the period.
type SemesterWindow struct {
	Start time.Time
	End   time.Time
}

// SemesterWindowFor returns the half-year window containing t, in t's location
func SemesterWindowFor(t time.Time) SemesterWindow {
	year := t.Year()
	loc := t.Location()

	if t.Month() <= time.June {
		return SemesterWindow{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(year, time.June, 30, 23, 59, 59, 0, loc),
		}
	}

	return SemesterWindow{
		Start: time.Date(year, time.July, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, 0, loc),
	}
}

// Contains reports whether t falls inside the window (inclusive bounds)
func (w SemesterWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label returns a short name like "2026-H1"
func (w SemesterWindow) Label() string {
	half := 1
	if w.Start.Month() == time.July {
		half = 2
	}
	return fmt.Sprintf("%d-H%d", w.Start.Year(), half)
}
