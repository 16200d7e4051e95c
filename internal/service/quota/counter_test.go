package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/internal/testfixtures"
	"github.com/m04kA/VenueBookingService/pkg/ptr"
)

func coCurricular(clubID, venueID int64, start time.Time, batch *string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ClubID:    clubID,
		VenueID:   venueID,
		EventName: "Workshop",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		EventType: domain.EventTypeCoCurricular,
		BatchID:   batch,
	}
}

func TestCountDistinctEvents(t *testing.T) {
	start := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     int
	}{
		{name: "empty", bookings: nil, want: 0},
		{
			name: "shared batch counts once",
			bookings: []*domain.Booking{
				coCurricular(1, 10, start, ptr.Ptr("b1"), domain.StatusApproved),
				coCurricular(1, 11, start, ptr.Ptr("b1"), domain.StatusPending),
			},
			want: 1,
		},
		{
			name: "rows without batch count individually",
			bookings: []*domain.Booking{
				coCurricular(1, 10, start, nil, domain.StatusApproved),
				coCurricular(1, 11, start, nil, domain.StatusApproved),
				coCurricular(1, 12, start, ptr.Ptr("b2"), domain.StatusApproved),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountDistinctEvents(tt.bookings))
		})
	}
}

func TestCounter_CountEvents(t *testing.T) {
	store := testfixtures.NewStore()
	window := domain.SemesterWindowFor(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	// одно мероприятие на двух площадках
	store.AddBooking(coCurricular(1, 10, time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC), ptr.Ptr("b1"), domain.StatusApproved))
	store.AddBooking(coCurricular(1, 11, time.Date(2026, 2, 10, 17, 0, 0, 0, time.UTC), ptr.Ptr("b1"), domain.StatusPending))
	// отклонённое не считается
	store.AddBooking(coCurricular(1, 10, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC), ptr.Ptr("b2"), domain.StatusRejected))
	// прошлый семестр
	store.AddBooking(coCurricular(1, 10, time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), ptr.Ptr("b3"), domain.StatusApproved))
	// последний момент окна
	store.AddBooking(coCurricular(1, 10, time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC), nil, domain.StatusApproved))
	// другой клуб
	store.AddBooking(coCurricular(2, 10, time.Date(2026, 2, 11, 17, 0, 0, 0, time.UTC), nil, domain.StatusApproved))

	counter := NewCounter(store.BookingRepo(), nil, testfixtures.NopLogger{})

	count, err := counter.CountEvents(context.Background(), 1, domain.EventTypeCoCurricular, window)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCounter_Status(t *testing.T) {
	store := testfixtures.NewStore()
	asOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store.AddBooking(coCurricular(1, 10, time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC), ptr.Ptr("x"), domain.StatusApproved))
	store.AddBooking(coCurricular(1, 11, time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC), ptr.Ptr("x"), domain.StatusApproved))
	store.AddBooking(coCurricular(1, 10, time.Date(2026, 11, 1, 17, 0, 0, 0, time.UTC), ptr.Ptr("y"), domain.StatusPending))

	t.Run("quota bound type", func(t *testing.T) {
		counter := NewCounter(store.BookingRepo(), map[domain.EventType]int{domain.EventTypeCoCurricular: 2}, testfixtures.NopLogger{})

		status, err := counter.Status(context.Background(), 1, domain.EventTypeCoCurricular, asOf)

		require.NoError(t, err)
		assert.Equal(t, 2, status.Count)
		assert.Equal(t, 2, status.Limit)
		assert.True(t, status.Limited)
		assert.True(t, status.Reached())
		assert.Equal(t, "2026-H2", status.Window.Label())
	})

	t.Run("not quota bound", func(t *testing.T) {
		counter := NewCounter(store.BookingRepo(), nil, testfixtures.NopLogger{})

		status, err := counter.Status(context.Background(), 1, domain.EventTypeOpenAll, asOf)

		require.NoError(t, err)
		assert.Equal(t, 0, status.Count)
		assert.Equal(t, 0, status.Limit)
		assert.False(t, status.Limited)
		assert.False(t, status.Reached())
	})

	t.Run("repository error", func(t *testing.T) {
		failing := testfixtures.NewStore()
		failing.GetErr = errors.New("boom")
		counter := NewCounter(failing.BookingRepo(), nil, testfixtures.NopLogger{})

		_, err := counter.Status(context.Background(), 1, domain.EventTypeCoCurricular, asOf)

		assert.ErrorIs(t, err, ErrInternal)
	})
}
