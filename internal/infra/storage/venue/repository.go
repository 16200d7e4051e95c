package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VenueBookingService/internal/domain"
	"github.com/m04kA/VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/VenueBookingService/pkg/psqlbuilder"
)

// Repository репозиторий площадок
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает найденные площадки в порядке возрастания ID.
// Отсутствующие ID пропускаются, сравнение с запросом выполняет вызывающая сторона
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Venue, error) {
	if len(ids) == 0 {
		return []*domain.Venue{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "category", "capacity").
		From("venues").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0, len(ids))
	for rows.Next() {
		var v domain.Venue
		var capacity sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &capacity); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			v.Capacity = &c
		}
		venues = append(venues, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// GetByID возвращает одну площадку
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	venues, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		return nil, ErrVenueNotFound
	}
	return venues[0], nil
}
