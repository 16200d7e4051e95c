package get_venue_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/policy"
	"github.com/m04kA/VenueBookingService/internal/testfixtures"
	"github.com/m04kA/VenueBookingService/pkg/types"
)

func newUseCase(store *testfixtures.Store) *UseCase {
	rules := policy.DefaultRules()
	rules.Location = time.UTC
	return NewUseCase(store.BookingRepo(), store.Venues(), rules, testfixtures.NopLogger{})
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 11, day, hour, minute, 0, 0, time.UTC)
}

func TestExecute_WeekdaySchedule(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddVenue(&domain.Venue{ID: 1, Name: "Main Hall", Category: domain.VenueCategoryNeedsApproval})
	store.AddBooking(&domain.Booking{ClubID: 1, VenueID: 1, EventName: "A", StartTime: at(17, 17, 0), EndTime: at(17, 18, 0), Status: domain.StatusApproved})
	store.AddBooking(&domain.Booking{ClubID: 2, VenueID: 1, EventName: "B", StartTime: at(17, 18, 0), EndTime: at(17, 19, 30), Status: domain.StatusPending})
	store.AddBooking(&domain.Booking{ClubID: 3, VenueID: 1, EventName: "C", StartTime: at(17, 20, 0), EndTime: at(17, 21, 0), Status: domain.StatusRejected})
	store.AddBooking(&domain.Booking{ClubID: 3, VenueID: 1, EventName: "D", StartTime: at(18, 17, 0), EndTime: at(18, 18, 0), Status: domain.StatusApproved})

	// Вторник
	resp, err := newUseCase(store).Execute(context.Background(), &Request{VenueID: 1, Date: at(17, 9, 0)})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("16:00"), resp.OpenFrom)
	require.Len(t, resp.Busy, 2)
	assert.Equal(t, "A", resp.Busy[0].EventName)
	assert.Equal(t, "B", resp.Busy[1].EventName)
	assert.Equal(t, []Interval{
		{Start: at(17, 16, 0), End: at(17, 17, 0)},
		{Start: at(17, 19, 30), End: at(18, 0, 0)},
	}, resp.Free)
}

func TestExecute_WeekendOpensEarlier(t *testing.T) {
	store := testfixtures.NewStore()
	store.AddVenue(&domain.Venue{ID: 1, Name: "Main Hall", Category: domain.VenueCategoryNeedsApproval})

	// Суббота
	resp, err := newUseCase(store).Execute(context.Background(), &Request{VenueID: 1, Date: at(21, 0, 0)})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("08:00"), resp.OpenFrom)
	assert.Empty(t, resp.Busy)
	assert.Equal(t, []Interval{{Start: at(21, 8, 0), End: at(22, 0, 0)}}, resp.Free)
}

func TestExecute_Errors(t *testing.T) {
	store := testfixtures.NewStore()
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: at(17, 0, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 5, Date: at(17, 0, 0)})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestFreeWindows_BookingBeforeOpening(t *testing.T) {
	busy := []BusyInterval{{Interval: Interval{Start: at(17, 9, 0), End: at(17, 16, 30)}}}

	free := freeWindows(at(17, 16, 0), at(18, 0, 0), busy)

	assert.Equal(t, []Interval{{Start: at(17, 16, 30), End: at(18, 0, 0)}}, free)
}
