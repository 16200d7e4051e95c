package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/service/bookings/models"
	"github.com/m04kA/VenueBookingService/internal/testfixtures"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

var (
	admin      = domain.Caller{UserID: 1, Role: domain.RoleAdmin}
	robotics   = domain.Caller{UserID: 2, Role: domain.RoleClub, ClubID: ptr.Ptr(int64(10))}
	drama      = domain.Caller{UserID: 3, Role: domain.RoleClub, ClubID: ptr.Ptr(int64(20))}
	eventStart = time.Date(2026, 11, 17, 17, 0, 0, 0, time.UTC)
)

func setup() (*testfixtures.Store, *Service) {
	store := testfixtures.NewStore()
	store.AddBooking(&domain.Booking{ClubID: 10, VenueID: 1, EventName: "Pending", StartTime: eventStart, EndTime: eventStart.Add(time.Hour), Status: domain.StatusPending, EventType: domain.EventTypeClosedClub})
	store.AddBooking(&domain.Booking{ClubID: 10, VenueID: 2, EventName: "Approved", StartTime: eventStart.AddDate(0, 0, 7), EndTime: eventStart.AddDate(0, 0, 7).Add(time.Hour), Status: domain.StatusApproved, EventType: domain.EventTypeOpenAll, IsPublic: true})
	store.AddBooking(&domain.Booking{ClubID: 10, VenueID: 1, EventName: "Rejected", StartTime: eventStart.AddDate(0, 0, 1), EndTime: eventStart.AddDate(0, 0, 1).Add(time.Hour), Status: domain.StatusRejected, EventType: domain.EventTypeClosedClub})
	return store, NewService(store.BookingRepo(), &testfixtures.TxManager{}, testfixtures.NopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	got, err := svc.GetByID(ctx, 1, robotics)
	require.NoError(t, err)
	assert.Equal(t, "Pending", got.EventName)
	assert.Equal(t, "2026-11-17T17:00:00Z", got.StartTime)

	_, err = svc.GetByID(ctx, 1, admin)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, drama)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 99, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetClubBookings(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	t.Run("excludes rejected by default", func(t *testing.T) {
		resp, err := svc.GetClubBookings(ctx, &models.GetClubBookingsRequest{Caller: robotics, ClubID: 10})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("include rejected and period", func(t *testing.T) {
		from := eventStart.Add(-time.Hour)
		to := eventStart.AddDate(0, 0, 2)
		resp, err := svc.GetClubBookings(ctx, &models.GetClubBookingsRequest{
			Caller: admin, ClubID: 10, From: &from, To: &to, IncludeRejected: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 2)
		assert.Equal(t, "Pending", resp.Bookings[0].EventName)
		assert.Equal(t, "Rejected", resp.Bookings[1].EventName)
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := svc.GetClubBookings(ctx, &models.GetClubBookingsRequest{Caller: admin, ClubID: 10, Status: ptr.Ptr("rejected")})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "rejected", resp.Bookings[0].Status)
	})

	t.Run("invalid period", func(t *testing.T) {
		from := eventStart
		_, err := svc.GetClubBookings(ctx, &models.GetClubBookingsRequest{Caller: admin, ClubID: 10, From: &from, To: &from})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("other club", func(t *testing.T) {
		_, err := svc.GetClubBookings(ctx, &models.GetClubBookingsRequest{Caller: drama, ClubID: 10})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetClubBookings_ReadsInReadOnlyTransaction(t *testing.T) {
	store, _ := setup()
	tx := &testfixtures.TxManager{Store: store}
	svc := NewService(store.BookingRepo(), tx, testfixtures.NopLogger{})

	resp, err := svc.GetClubBookings(context.Background(), &models.GetClubBookingsRequest{Caller: robotics, ClubID: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, 1, tx.ReadOnlyCalls)
	assert.Zero(t, tx.Calls)
}

func TestGetClubBookings_RepositoryError(t *testing.T) {
	store, svc := setup()
	store.GetErr = errors.New("connection reset")

	_, err := svc.GetClubBookings(context.Background(), &models.GetClubBookingsRequest{Caller: admin, ClubID: 10})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve pending", func(t *testing.T) {
		store, svc := setup()
		resp, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Caller: admin, Status: "approved"})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.Equal(t, domain.StatusApproved, store.AllBookings()[0].Status)
	})

	t.Run("only pending can be decided", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.UpdateStatus(ctx, 2, &models.UpdateStatusRequest{Caller: admin, Status: "rejected"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Caller: admin, Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("club cannot decide", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Caller: robotics, Status: "approved"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.UpdateStatus(ctx, 42, &models.UpdateStatusRequest{Caller: admin, Status: "approved"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, svc := setup()

	assert.ErrorIs(t, svc.Delete(ctx, 1, robotics), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, 1, admin))
	assert.Len(t, store.AllBookings(), 2)
	assert.ErrorIs(t, svc.Delete(ctx, 1, admin), ErrBookingNotFound)
}
