package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap_HalfOpen(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 11, 3, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{name: "touching end to start", s1: at(10, 0), e1: at(11, 0), s2: at(11, 0), e2: at(12, 0), want: false},
		{name: "partial overlap", s1: at(10, 0), e1: at(11, 0), s2: at(10, 30), e2: at(11, 30), want: true},
		{name: "contained", s1: at(10, 0), e1: at(12, 0), s2: at(10, 30), e2: at(11, 0), want: true},
		{name: "identical", s1: at(10, 0), e1: at(11, 0), s2: at(10, 0), e2: at(11, 0), want: true},
		{name: "disjoint", s1: at(8, 0), e1: at(9, 0), s2: at(10, 0), e2: at(11, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, IntervalsOverlap(tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}

func TestBooking_StatusHelpers(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	approved := &Booking{Status: StatusApproved}
	rejected := &Booking{Status: StatusRejected}

	assert.True(t, pending.IsBlocking())
	assert.True(t, approved.IsBlocking())
	assert.False(t, rejected.IsBlocking())

	assert.True(t, pending.CanBeDecided())
	assert.False(t, approved.CanBeDecided())
	assert.False(t, rejected.CanBeDecided())
}

func TestEventType(t *testing.T) {
	assert.True(t, EventTypeCoCurricular.IsQuotaBound())
	assert.False(t, EventTypeOpenAll.IsQuotaBound())
	assert.False(t, EventType("workshop").IsValid())
	assert.True(t, EventTypeClosedClub.IsValid())
}

func TestCaller_CanActForClub(t *testing.T) {
	clubID := int64(7)
	member := Caller{UserID: 1, Role: RoleClub, ClubID: &clubID}
	admin := Caller{UserID: 2, Role: RoleAdmin}

	assert.True(t, member.CanActForClub(7))
	assert.False(t, member.CanActForClub(8))
	assert.True(t, admin.CanActForClub(8))
	assert.False(t, Caller{UserID: 3, Role: RoleClub}.CanActForClub(7))
}
