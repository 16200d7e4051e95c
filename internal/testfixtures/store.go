// Package testfixtures содержит in-memory реализации хранилищ и фиксированные часы для тестов.
package testfixtures

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/booking"
	clubRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/club"
	venueRepo "github.com/m04kA/VenueBookingService/internal/infra/storage/venue"
)

var (
	// ErrInsertFailed возвращается из Create после исчерпания FailCreateAfter
	ErrInsertFailed = errors.New("testfixtures: insert failed")
)

// Store in-memory хранилище клубов, площадок и бронирований.
// Фильтр бронирований повторяет семантику SQL-репозитория.
type Store struct {
	mu       sync.Mutex
	clubs    map[int64]*domain.Club
	venues   map[int64]*domain.Venue
	bookings []*domain.Booking
	nextID   int64

	// FailCreateAfter заставляет Create падать после указанного числа успешных вставок (0 - не падать)
	FailCreateAfter int
	// GetErr возвращается из GetWithFilter, если задан
	GetErr error

	created int
}

func NewStore() *Store {
	return &Store{
		clubs:  make(map[int64]*domain.Club),
		venues: make(map[int64]*domain.Venue),
		nextID: 1,
	}
}

func (s *Store) AddClub(c *domain.Club) *domain.Club {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clubs[c.ID] = c
	return c
}

func (s *Store) AddVenue(v *domain.Venue) *domain.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[v.ID] = v
	return v
}

// AddBooking добавляет существующее бронирование, минуя счётчик ошибок Create
func (s *Store) AddBooking(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID
	s.nextID++
	s.bookings = append(s.bookings, b)
	return b
}

// AllBookings возвращает копию всех бронирований
func (s *Store) AllBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, len(s.bookings))
	copy(result, s.bookings)
	return result
}

// bookingsSnapshot состояние бронирований на момент начала транзакции
type bookingsSnapshot struct {
	ptrs   []*domain.Booking
	values []domain.Booking
}

func (s *Store) snapshot() bookingsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := bookingsSnapshot{
		ptrs:   make([]*domain.Booking, len(s.bookings)),
		values: make([]domain.Booking, len(s.bookings)),
	}
	for i, b := range s.bookings {
		snap.ptrs[i] = b
		snap.values[i] = *b
	}
	return snap
}

// restore откатывает вставки, удаления и смену статусов
func (s *Store) restore(snap bookingsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range snap.ptrs {
		*b = snap.values[i]
	}
	s.bookings = append([]*domain.Booking(nil), snap.ptrs...)
}

// Clubs репозиторий клубов поверх Store
func (s *Store) Clubs() *ClubRepository { return &ClubRepository{s: s} }

// Venues репозиторий площадок поверх Store
func (s *Store) Venues() *VenueRepository { return &VenueRepository{s: s} }

// BookingRepo репозиторий бронирований поверх Store
func (s *Store) BookingRepo() *BookingRepository { return &BookingRepository{s: s} }

type ClubRepository struct{ s *Store }

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*domain.Club, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return nil, clubRepo.ErrClubNotFound
	}
	return c, nil
}

type VenueRepository struct{ s *Store }

func (r *VenueRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Venue, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.venues[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	venues, _ := r.GetByIDs(ctx, []int64{id})
	if len(venues) == 0 {
		return nil, venueRepo.ErrVenueNotFound
	}
	return venues[0], nil
}

type BookingRepository struct{ s *Store }

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreateAfter > 0 && s.created >= s.FailCreateAfter {
		return nil, ErrInsertFailed
	}
	s.created++

	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *BookingRepository) GetWithFilter(ctx context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if s.matches(b, f) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (s *Store) matches(b *domain.Booking, f domain.BookingsFilter) bool {
	if len(f.VenueIDs) > 0 && !containsID(f.VenueIDs, b.VenueID) {
		return false
	}
	if f.ClubID != nil && b.ClubID != *f.ClubID {
		return false
	}
	if f.ClubGroup != nil {
		club, ok := s.clubs[b.ClubID]
		if !ok || club.Group != *f.ClubGroup {
			return false
		}
	}
	if f.EventType != nil && b.EventType != *f.EventType {
		return false
	}
	if f.BatchID != nil && (b.BatchID == nil || *b.BatchID != *f.BatchID) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	if f.ExcludeRejected && b.Status == domain.StatusRejected {
		return false
	}
	if f.OverlapFrom != nil && !b.EndTime.After(*f.OverlapFrom) {
		return false
	}
	if f.OverlapTo != nil && !b.StartTime.Before(*f.OverlapTo) {
		return false
	}
	return true
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
