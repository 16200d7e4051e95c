package venuelock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "token-1"

func newTestLocker() (*Locker, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	l := NewLocker(client, 10*time.Second, 0)
	l.newToken = func() string { return testToken }
	return l, mock
}

func TestAcquire_LocksVenuesInOrder(t *testing.T) {
	l, mock := newTestLocker()
	ctx := context.Background()

	mock.ExpectSetNX("venue:lock:3", testToken, 10*time.Second).SetVal(true)
	mock.ExpectSetNX("venue:lock:7", testToken, 10*time.Second).SetVal(true)

	release, err := l.Acquire(ctx, []int64{7, 3, 7})
	require.NoError(t, err)

	mock.ExpectEval(releaseScript, []string{"venue:lock:3"}, testToken).SetVal(int64(1))
	mock.ExpectEval(releaseScript, []string{"venue:lock:7"}, testToken).SetVal(int64(1))

	require.NoError(t, release(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquire_BusyVenueReleasesAcquired(t *testing.T) {
	l, mock := newTestLocker()
	ctx := context.Background()

	mock.ExpectSetNX("venue:lock:1", testToken, 10*time.Second).SetVal(true)
	mock.ExpectSetNX("venue:lock:2", testToken, 10*time.Second).SetVal(false)
	mock.ExpectEval(releaseScript, []string{"venue:lock:1"}, testToken).SetVal(int64(1))

	release, err := l.Acquire(ctx, []int64{1, 2})

	assert.Nil(t, release)
	assert.ErrorIs(t, err, ErrLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquire_RedisError(t *testing.T) {
	l, mock := newTestLocker()

	mock.ExpectSetNX("venue:lock:5", testToken, 10*time.Second).SetErr(errors.New("connection refused"))

	_, err := l.Acquire(context.Background(), []int64{5})

	assert.ErrorIs(t, err, ErrRedis)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopLocker(t *testing.T) {
	release, err := NoopLocker{}.Acquire(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
