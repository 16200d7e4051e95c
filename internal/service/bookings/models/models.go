package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, когда конец периода не позже начала
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// UpdateStatusRequest решение администратора
type UpdateStatusRequest struct {
	Caller domain.Caller
	Status string
}

// GetClubBookingsRequest запрос на получение бронирований клуба
type GetClubBookingsRequest struct {
	Caller          domain.Caller
	ClubID          int64
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeRejected bool       // Включить отклонённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClubBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	clubID := r.ClubID
	filter := domain.BookingsFilter{
		ClubID:          &clubID,
		OverlapFrom:     r.From,
		OverlapTo:       r.To,
		ExcludeRejected: !r.IncludeRejected,
	}

	if r.From != nil && r.To != nil && !r.To.After(*r.From) {
		return filter, fmt.Errorf("%w: to must be after from", ErrInvalidPeriod)
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		if status == domain.StatusRejected {
			filter.ExcludeRejected = false
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64   `json:"id"`
	ClubID            int64   `json:"clubId"`
	VenueID           int64   `json:"venueId"`
	EventName         string  `json:"eventName"`
	EventType         string  `json:"eventType"`
	StartTime         string  `json:"startTime"` // RFC3339
	EndTime           string  `json:"endTime"`   // RFC3339
	Status            string  `json:"status"`
	ExpectedAttendees *int    `json:"expectedAttendees,omitempty"`
	BatchID           *string `json:"batchId,omitempty"`
	IsPublic          bool    `json:"isPublic"`
	CreatedBy         int64   `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		ClubID:            b.ClubID,
		VenueID:           b.VenueID,
		EventName:         b.EventName,
		EventType:         string(b.EventType),
		StartTime:         b.StartTime.Format(time.RFC3339),
		EndTime:           b.EndTime.Format(time.RFC3339),
		Status:            string(b.Status),
		ExpectedAttendees: b.ExpectedAttendees,
		BatchID:           b.BatchID,
		IsPublic:          b.IsPublic,
		CreatedBy:         b.CreatedBy,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
		return domain.BookingStatus(status), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}
