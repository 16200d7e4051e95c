package get_quota_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/policy"
	"github.com/m04kA/VenueBookingService/internal/service/quota"
	"github.com/m04kA/VenueBookingService/internal/testfixtures"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

func setup() (*testfixtures.Store, *UseCase) {
	return setupIn(time.UTC)
}

func setupIn(loc *time.Location) (*testfixtures.Store, *UseCase) {
	store := testfixtures.NewStore()
	store.AddClub(&domain.Club{ID: 1, Name: "Robotics", Group: domain.GroupA})

	counter := quota.NewCounter(store.BookingRepo(), map[domain.EventType]int{domain.EventTypeCoCurricular: 2}, testfixtures.NopLogger{})
	uc := NewUseCase(counter, store.Clubs(), policy.Rules{Location: loc}, testfixtures.NopLogger{})
	uc.timeProvider = &testfixtures.FixedClock{Time: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	return store, uc
}

func admin() domain.Caller {
	return domain.Caller{UserID: 1, Role: domain.RoleAdmin}
}

func TestExecute_CoCurricular(t *testing.T) {
	store, uc := setup()
	start := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)
	for _, venue := range []int64{10, 11} {
		store.AddBooking(&domain.Booking{
			ClubID: 1, VenueID: venue, StartTime: start, EndTime: start.Add(time.Hour),
			Status: domain.StatusApproved, EventType: domain.EventTypeCoCurricular, BatchID: ptr.Ptr("x"),
		})
	}

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: domain.EventTypeCoCurricular})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 2, resp.Limit)
	assert.True(t, resp.Limited)
	assert.Equal(t, 1, resp.Remaining)
	assert.Equal(t, "2026-H2", resp.Semester)
}

func TestExecute_AsOfOtherSemester(t *testing.T) {
	_, uc := setup()
	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: domain.EventTypeCoCurricular, AsOf: &asOf})

	require.NoError(t, err)
	assert.Equal(t, "2026-H1", resp.Semester)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 2, resp.Remaining)
}

func TestExecute_SemesterBoundsFollowPolicyZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	store, uc := setupIn(ist)

	// 2027-01-01 02:00 IST это ещё 2026-12-31 по UTC
	first := time.Date(2027, 1, 1, 2, 0, 0, 0, ist)
	second := first.AddDate(0, 0, 1)
	for i, start := range []time.Time{first, second} {
		store.AddBooking(&domain.Booking{
			ClubID: 1, VenueID: 10, StartTime: start.UTC(), EndTime: start.Add(time.Hour).UTC(),
			Status: domain.StatusApproved, EventType: domain.EventTypeCoCurricular, BatchID: ptr.Ptr([]string{"a", "b"}[i]),
		})
	}
	// Дата из query-параметра приходит как полночь UTC
	asOf := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: domain.EventTypeCoCurricular, AsOf: &asOf})

	require.NoError(t, err)
	assert.Equal(t, "2027-H1", resp.Semester)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 0, resp.Remaining)
	assert.True(t, resp.WindowStart.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, ist)))
}

func TestExecute_AsOfDateAtSemesterEdge(t *testing.T) {
	_, uc := setupIn(time.FixedZone("IST", 5*60*60+30*60))
	asOf := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: domain.EventTypeCoCurricular, AsOf: &asOf})

	require.NoError(t, err)
	assert.Equal(t, "2027-H1", resp.Semester)
}

func TestExecute_InvalidInputReason(t *testing.T) {
	_, uc := setup()

	_, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 0, EventType: domain.EventTypeOpenAll})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "clubId must be positive", Reason(err))

	_, err = uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: "party"})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, `unknown eventType "party"`, Reason(err))
}

func TestExecute_NotQuotaBound(t *testing.T) {
	_, uc := setup()

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin(), ClubID: 1, EventType: domain.EventTypeClosedClub})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Limit)
	assert.False(t, resp.Limited)
	assert.Equal(t, 0, resp.Remaining)
}

func TestExecute_Errors(t *testing.T) {
	_, uc := setup()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Caller: admin(), ClubID: 1, EventType: "party"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{Caller: admin(), ClubID: 42, EventType: domain.EventTypeOpenAll})
	assert.ErrorIs(t, err, ErrClubNotFound)

	club := domain.Caller{UserID: 3, Role: domain.RoleClub, ClubID: ptr.Ptr(int64(2))}
	_, err = uc.Execute(ctx, &Request{Caller: club, ClubID: 1, EventType: domain.EventTypeOpenAll})
	assert.ErrorIs(t, err, ErrForbidden)
}
