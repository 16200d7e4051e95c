package policy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

func testRules() Rules {
	r := DefaultRules()
	r.Location = time.UTC
	return r
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DaysUntil(now.Add(30*day), now))
	assert.Equal(t, 30, DaysUntil(now.Add(29*day+time.Minute), now))
	assert.Equal(t, 1, DaysUntil(now.Add(time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, -1, DaysUntil(now.Add(-36*time.Hour), now))
}

func TestCheckAdvanceNotice_Thresholds(t *testing.T) {
	rules := testRules()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	for eventType, threshold := range rules.NoticeDays {
		t.Run(string(eventType), func(t *testing.T) {
			tooLate := now.Add(time.Duration(threshold-1) * day)
			err := rules.CheckAdvanceNotice(eventType, tooLate, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAdvanceNotice)

			var violation *Violation
			require.True(t, errors.As(err, &violation))
			assert.Contains(t, violation.Reason, string(eventType))

			exact := now.Add(time.Duration(threshold) * day)
			assert.NoError(t, rules.CheckAdvanceNotice(eventType, exact, now))
		})
	}
}

func TestCheckAdvanceNotice_UnknownType(t *testing.T) {
	err := testRules().CheckAdvanceNotice("hackathon", time.Now().Add(100*day), time.Now())
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestCheckOperatingHours(t *testing.T) {
	rules := testRules()
	// 2026-11-04 - среда, 2026-11-07 - суббота
	weekday := func(h, m int) time.Time { return time.Date(2026, 11, 4, h, m, 0, 0, time.UTC) }
	weekend := func(h, m int) time.Time { return time.Date(2026, 11, 7, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "weekday before 16:00", start: weekday(15, 59), end: weekday(17, 0), wantErr: true},
		{name: "weekday at 16:00", start: weekday(16, 0), end: weekday(17, 0)},
		{name: "weekday evening", start: weekday(17, 0), end: weekday(18, 0)},
		{name: "weekend before 08:00", start: weekend(7, 30), end: weekend(9, 0), wantErr: true},
		{name: "weekend at 08:00", start: weekend(8, 0), end: weekend(9, 0)},
		{name: "weekend morning allowed on weekend only", start: weekend(10, 0), end: weekend(12, 0)},
		{name: "end equals start", start: weekday(17, 0), end: weekday(17, 0), wantErr: true},
		{name: "end before start", start: weekday(18, 0), end: weekday(17, 0), wantErr: true},
		{name: "crosses midnight", start: weekday(23, 0), end: weekday(23, 0).Add(2 * time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.CheckOperatingHours(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOperatingHours)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckOperatingHours_EndNotAfterStartAlwaysFails(t *testing.T) {
	rules := testRules()
	start := time.Date(2026, 11, 7, 10, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{0, -time.Minute, -5 * time.Hour, -48 * time.Hour} {
		assert.ErrorIs(t, rules.CheckOperatingHours(start, start.Add(offset)), ErrOperatingHours)
	}
}

func TestCheckOperatingHours_SubMinuteWindow(t *testing.T) {
	rules := testRules()
	start := time.Date(2026, 11, 4, 17, 0, 10, 0, time.UTC)

	assert.NoError(t, rules.CheckOperatingHours(start, start.Add(40*time.Second)))
	assert.ErrorIs(t, rules.CheckOperatingHours(start.Add(40*time.Second), start.Add(24*time.Hour)), ErrOperatingHours)
}

func TestCheckOperatingHours_UsesRulesLocation(t *testing.T) {
	rules := testRules()
	rules.Location = time.FixedZone("IST", 5*3600+1800)

	// 11:00 UTC = 16:30 IST, среда
	start := time.Date(2026, 11, 4, 11, 0, 0, 0, time.UTC)
	assert.NoError(t, rules.CheckOperatingHours(start, start.Add(time.Hour)))
}

func TestCheckCapacity(t *testing.T) {
	rules := testRules()
	hall := &domain.Venue{ID: 1, Name: "Main Hall", Capacity: ptr.Ptr(100)}
	lawn := &domain.Venue{ID: 2, Name: "Lawn"}
	room := &domain.Venue{ID: 3, Name: "Room 101", Capacity: ptr.Ptr(40)}

	assert.NoError(t, rules.CheckCapacity([]*domain.Venue{hall, lawn}, ptr.Ptr(100)))
	assert.NoError(t, rules.CheckCapacity([]*domain.Venue{hall, room}, nil))

	err := rules.CheckCapacity([]*domain.Venue{hall, room}, ptr.Ptr(41))
	require.ErrorIs(t, err, ErrCapacity)

	var violation *Violation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, int64(3), violation.VenueID)
	assert.Contains(t, violation.Reason, "Room 101")
	assert.Contains(t, violation.Reason, "40")

	assert.ErrorIs(t, rules.CheckCapacity([]*domain.Venue{hall}, ptr.Ptr(101)), ErrCapacity)
}
