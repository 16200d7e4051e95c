package venuelock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLocked площадка занята параллельной заявкой
	ErrLocked = errors.New("venuelock: venue is locked by another submission")

	// ErrRedis ошибка обращения к redis
	ErrRedis = errors.New("venuelock: redis error")
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит нам
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

const retryInterval = 50 * time.Millisecond

// ReleaseFunc снимает все захваченные блокировки
type ReleaseFunc func(ctx context.Context) error

// Locker распределённая блокировка площадок на время проверки конфликтов и записи
type Locker struct {
	client   redis.Cmdable
	ttl      time.Duration
	wait     time.Duration
	newToken func() string
}

// NewLocker ttl - время жизни блокировки, wait - сколько ждать занятую площадку (0 - не ждать)
func NewLocker(client redis.Cmdable, ttl, wait time.Duration) *Locker {
	return &Locker{
		client:   client,
		ttl:      ttl,
		wait:     wait,
		newToken: uuid.NewString,
	}
}

// Acquire захватывает блокировки площадок в порядке возрастания ID
// При неудаче уже захваченные блокировки освобождаются
func (l *Locker) Acquire(ctx context.Context, venueIDs []int64) (ReleaseFunc, error) {
	ids := uniqueSorted(venueIDs)
	token := l.newToken()
	acquired := make([]string, 0, len(ids))

	release := func(ctx context.Context) error {
		var firstErr error
		for _, key := range acquired {
			if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("%w: release %s: %v", ErrRedis, key, err)
			}
		}
		return firstErr
	}

	for _, id := range ids {
		key := Key(id)
		ok, err := l.lockOne(ctx, key, token)
		if err != nil || !ok {
			_ = release(ctx)
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: venue_id=%d", ErrLocked, id)
		}
		acquired = append(acquired, key)
	}

	return release, nil
}

func (l *Locker) lockOne(ctx context.Context, key, token string) (bool, error) {
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return false, fmt.Errorf("%w: set %s: %v", ErrRedis, key, err)
		}
		if ok {
			return true, nil
		}
		if !time.Now().Before(deadline) {
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// Key ключ блокировки площадки в redis
func Key(venueID int64) string {
	return fmt.Sprintf("venue:lock:%d", venueID)
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// NoopLocker используется, когда redis выключен: сериализацию обеспечивает БД
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, []int64) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
