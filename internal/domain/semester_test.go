package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSemesterWindowFor(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name      string
		date      time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{
			name:      "first day of year",
			date:      time.Date(2026, time.January, 1, 0, 0, 0, 0, loc),
			wantStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, time.June, 30, 23, 59, 59, 0, loc),
			wantLabel: "2026-H1",
		},
		{
			name:      "last second of first half",
			date:      time.Date(2026, time.June, 30, 23, 59, 59, 0, loc),
			wantStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, time.June, 30, 23, 59, 59, 0, loc),
			wantLabel: "2026-H1",
		},
		{
			name:      "first day of second half",
			date:      time.Date(2026, time.July, 1, 0, 0, 0, 0, loc),
			wantStart: time.Date(2026, time.July, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, time.December, 31, 23, 59, 59, 0, loc),
			wantLabel: "2026-H2",
		},
		{
			name:      "mid october",
			date:      time.Date(2026, time.October, 17, 14, 0, 0, 0, loc),
			wantStart: time.Date(2026, time.July, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, time.December, 31, 23, 59, 59, 0, loc),
			wantLabel: "2026-H2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := SemesterWindowFor(tt.date)

			assert.True(t, tt.wantStart.Equal(w.Start), "start: got %s", w.Start)
			assert.True(t, tt.wantEnd.Equal(w.End), "end: got %s", w.End)
			assert.Equal(t, tt.wantLabel, w.Label())
			assert.True(t, w.Contains(tt.date))
		})
	}
}

func TestSemesterWindow_ContainsBounds(t *testing.T) {
	w := SemesterWindowFor(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
	assert.False(t, w.Contains(w.End.Add(time.Second)))
}
