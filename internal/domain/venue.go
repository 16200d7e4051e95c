package domain

// VenueCategory determines the initial status of a booking for the venue
type VenueCategory string

const (
	VenueCategoryAutoApproval  VenueCategory = "auto_approval"
	VenueCategoryNeedsApproval VenueCategory = "needs_approval"
)

// Venue is reference data maintained by admins outside the booking flow
type Venue struct {
	ID       int64
	Name     string
	Category VenueCategory
	Capacity *int // nil = no capacity limit recorded
}

// HasCapacity returns true if a maximum number of attendees is recorded for the venue
func (v *Venue) HasCapacity() bool {
	return v.Capacity != nil
}
