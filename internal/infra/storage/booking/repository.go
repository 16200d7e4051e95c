package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/VenueBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.club_id",
	"b.venue_id",
	"b.event_name",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.event_type",
	"b.expected_attendees",
	"b.batch_id",
	"b.is_public",
	"b.created_by",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её: так все строки одной заявки
// записываются атомарно вместе с проверкой пересечений
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"club_id",
			"venue_id",
			"event_name",
			"start_time",
			"end_time",
			"status",
			"event_type",
			"expected_attendees",
			"batch_id",
			"is_public",
			"created_by",
		).
		Values(
			booking.ClubID,
			booking.VenueID,
			booking.EventName,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.EventType,
			booking.ExpectedAttendees,
			booking.BatchID,
			booking.IsPublic,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		switch {
		case psqlbuilder.IsExclusionViolation(err):
			return nil, fmt.Errorf("%w: venue_id=%d", ErrOverlap, booking.VenueID)
		case psqlbuilder.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: Create: %v", ErrSerialization, err)
		case psqlbuilder.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: club_id=%d, venue_id=%d", ErrReferenceNotFound, booking.ClubID, booking.VenueID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией
//
// Примеры использования:
//
// 1. Не отклонённые бронирования площадок, пересекающие окно [from, to):
//    filter := domain.BookingsFilter{VenueIDs: ids, OverlapFrom: &from, OverlapTo: &to, ExcludeRejected: true}
//
// 2. Мероприятия клуба определённого типа за семестр:
//    filter := domain.BookingsFilter{ClubID: &clubID, EventType: &eventType, OverlapFrom: &w.Start, OverlapTo: &w.End}
//
// 3. Все строки одной заявки:
//    filter := domain.BookingsFilter{BatchID: &batchID}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b")

	if len(filter.VenueIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.venue_id": filter.VenueIDs})
	}
	if filter.ClubID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.club_id": *filter.ClubID})
	}
	if filter.ClubGroup != nil {
		selectBuilder = selectBuilder.
			Join("clubs c ON c.id = b.club_id").
			Where(squirrel.Eq{"c.group_category": *filter.ClubGroup})
	}
	if filter.EventType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.event_type": *filter.EventType})
	}
	if filter.BatchID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.batch_id": *filter.BatchID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.ExcludeRejected {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": domain.StatusRejected})
	}

	// Полуоткрытые интервалы: [start, end) пересекает [from, to) тогда и только тогда,
	// когда start < to и end > from. Касание границ пересечением не считается
	if filter.OverlapTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.start_time": *filter.OverlapTo})
	}
	if filter.OverlapFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"b.end_time": *filter.OverlapFrom})
	}

	selectBuilder = selectBuilder.OrderBy("b.start_time ASC", "b.id ASC")

	// Внутри транзакции блокируем найденные строки площадок до конца записи
	if dbmetrics.IsInTransaction(ctx) && len(filter.VenueIDs) > 0 {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if psqlbuilder.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: GetWithFilter: %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if psqlbuilder.IsExclusionViolation(err) {
			return fmt.Errorf("%w: booking_id=%d", ErrOverlap, id)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var expectedAttendees sql.NullInt64
	var batchID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClubID,
		&booking.VenueID,
		&booking.EventName,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.EventType,
		&expectedAttendees,
		&batchID,
		&booking.IsPublic,
		&booking.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expectedAttendees.Valid {
		v := int(expectedAttendees.Int64)
		booking.ExpectedAttendees = &v
	}
	if batchID.Valid {
		booking.BatchID = &batchID.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
