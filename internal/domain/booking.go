package domain

import "time"

// BookingStatus represents the status of a booking row
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// EventType is the kind of event a club books a venue for
type EventType string

const (
	EventTypeCoCurricular EventType = "co_curricular"
	EventTypeOpenAll      EventType = "open_all"
	EventTypeClosedClub   EventType = "closed_club"
)

// IsValid reports whether the event type is one of the known types
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeCoCurricular, EventTypeOpenAll, EventTypeClosedClub:
		return true
	default:
		return false
	}
}

// IsQuotaBound returns true for the event type limited per club per semester
func (t EventType) IsQuotaBound() bool {
	return t == EventTypeCoCurricular
}

// Booking is one persisted row: a single venue reserved for a club's event.
// Rows created from one multi-venue submission share BatchID.
type Booking struct {
	ID                int64
	ClubID            int64
	VenueID           int64
	EventName         string
	StartTime         time.Time
	EndTime           time.Time
	Status            BookingStatus
	EventType         EventType
	ExpectedAttendees *int
	BatchID           *string // NULL for rows created before batches existed
	IsPublic          bool
	CreatedBy         int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its venue (pending or approved)
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusRejected
}

// CanBeDecided returns true if an admin can still approve or reject the booking
func (b *Booking) CanBeDecided() bool {
	return b.Status == StatusPending
}

// Overlaps reports whether the booking intersects the half-open window [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartTime, b.EndTime, start, end)
}

// IntervalsOverlap is the half-open overlap test: [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2.
// Touching endpoints do not overlap.
func IntervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// BookingsFilter describes a query against the bookings table.
// Zero-valued fields are not applied.
type BookingsFilter struct {
	VenueIDs        []int64        // any of these venues
	ClubID          *int64         // bookings of one club
	ClubGroup       *GroupCategory // bookings of clubs in this cohort group
	EventType       *EventType     // one event type
	BatchID         *string        // rows of one submission
	Status          *BookingStatus // exact status
	OverlapFrom     *time.Time     // together with OverlapTo: rows overlapping [OverlapFrom, OverlapTo)
	OverlapTo       *time.Time
	ExcludeRejected bool // status <> 'rejected'
}
