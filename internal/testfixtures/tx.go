package testfixtures

import (
	"context"

	"github.com/m04kA/VenueBookingService/pkg/venuelock"
)

// TxManager считает вызовы и, если задан Store, откатывает его бронирования при ошибке fn
type TxManager struct {
	Store         *Store
	Calls         int
	ReadOnlyCalls int
	// Err возвращается вместо вызова функции, если задан
	Err error
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.ReadOnlyCalls++
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Store == nil {
		return fn(ctx)
	}

	snap := m.Store.snapshot()
	if err := fn(ctx); err != nil {
		m.Store.restore(snap)
		return err
	}
	return nil
}

// Locker запоминает захваченные площадки
type Locker struct {
	Acquired [][]int64
	Released int
	Err      error
}

func (l *Locker) Acquire(ctx context.Context, venueIDs []int64) (venuelock.ReleaseFunc, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	l.Acquired = append(l.Acquired, append([]int64(nil), venueIDs...))
	return func(context.Context) error {
		l.Released++
		return nil
	}, nil
}
