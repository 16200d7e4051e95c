package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/booking"
	"github.com/m04kA/VenueBookingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и решений администратора
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Представитель клуба видит только бронирования своего клуба, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, caller.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !caller.CanActForClub(booking.ClubID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClubBookings получает бронирования клуба с фильтрацией по периоду и статусу
//
// Примеры использования:
// - Все не отклонённые: GetClubBookings(ctx, &GetClubBookingsRequest{ClubID: 3})
// - За период: указать From и To, возвращаются бронирования, пересекающие [From, To)
// - Включая отклонённые: IncludeRejected = true
func (s *Service) GetClubBookings(ctx context.Context, req *models.GetClubBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClubBookings: fetching bookings for club=%d, user=%d", req.ClubID, req.Caller.UserID)

	if !req.Caller.CanActForClub(req.ClubID) {
		s.logger.Warn("GetClubBookings: access denied for user=%d to club=%d", req.Caller.UserID, req.ClubID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClubBookings: invalid filter for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var bookings []*domain.Booking
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("GetClubBookings: repository error for club=%d: %v", req.ClubID, err)
		return nil, fmt.Errorf("%w: GetClubBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClubBookings: successfully fetched %d bookings for club=%d", len(bookings), req.ClubID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus решение администратора по ожидающему бронированию: pending -> approved | rejected
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.Caller.UserID)

	if !req.Caller.IsAdmin() {
		s.logger.Warn("UpdateStatus: user=%d is not an admin", req.Caller.UserID)
		return nil, ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || newStatus == domain.StatusPending {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}

	var updated *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeDecided() {
			s.logger.Warn("UpdateStatus: booking id=%d has status=%s, only pending can be decided", bookingID, booking.Status)
			return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		updated = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("UpdateStatus: transaction error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование, доступно только администратору
func (s *Service) Delete(ctx context.Context, bookingID int64, caller domain.Caller) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("Delete: user=%d is not an admin", caller.UserID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
