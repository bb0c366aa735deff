package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
)

type stubOffices struct {
	mu    sync.Mutex
	loc   office.OfficeLocation
	err   error
	calls int
}

func (s *stubOffices) GetByID(_ context.Context, id string) (office.OfficeLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return office.OfficeLocation{}, s.err
	}
	return s.loc, nil
}

func (s *stubOffices) List(context.Context) ([]office.OfficeLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []office.OfficeLocation{s.loc}, nil
}

// slowOffices blocks GetByID until release is closed and reports the
// load context's state once unblocked.
type slowOffices struct {
	stubOffices
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (s *slowOffices) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	close(s.started)
	<-s.release
	s.ctxErr <- ctx.Err()
	return s.stubOffices.GetByID(ctx, id)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func hq() office.OfficeLocation {
	lat, lng := 12.9716, 77.5946
	return office.OfficeLocation{ID: "office-1", OfficeName: "HQ", Latitude: &lat, Longitude: &lng, OfficeType: office.OfficeTypeOffice}
}

func TestOfficeLocationCache_GetByID(t *testing.T) {
	ctx := context.Background()
	key := GetOfficeLocationDetailKey("office-1")
	payload, err := json.Marshal(hq())
	require.NoError(t, err)

	t.Run("hit skips the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		next := &stubOffices{loc: hq()}
		repo := NewOfficeLocationRepository(next, rdb, 0, discard)

		mock.ExpectGet(key).SetVal(string(payload))

		got, err := repo.GetByID(ctx, "office-1")

		require.NoError(t, err)
		assert.Equal(t, hq(), got)
		assert.Zero(t, next.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss loads and fills the cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		next := &stubOffices{loc: hq()}
		repo := NewOfficeLocationRepository(next, rdb, 0, discard)

		mock.ExpectGet(key).RedisNil()
		mock.ExpectSet(key, payload, DefaultOfficeLocationTTL).SetVal("OK")

		got, err := repo.GetByID(ctx, "office-1")

		require.NoError(t, err)
		assert.Equal(t, "HQ", got.OfficeName)
		assert.Equal(t, 1, next.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found is not cached", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		next := &stubOffices{err: office.ErrOfficeLocationNotFound}
		repo := NewOfficeLocationRepository(next, rdb, 0, discard)

		mock.ExpectGet(key).RedisNil()

		_, err := repo.GetByID(ctx, "office-1")

		assert.ErrorIs(t, err, office.ErrOfficeLocationNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis outage falls through to the store", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		next := &stubOffices{loc: hq()}
		repo := NewOfficeLocationRepository(next, rdb, 0, discard)

		mock.ExpectGet(key).SetErr(errors.New("connection refused"))
		mock.ExpectSet(key, payload, DefaultOfficeLocationTTL).SetErr(errors.New("connection refused"))

		got, err := repo.GetByID(ctx, "office-1")

		require.NoError(t, err)
		assert.Equal(t, hq(), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt entry is reloaded", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		next := &stubOffices{loc: hq()}
		repo := NewOfficeLocationRepository(next, rdb, 0, discard)

		mock.ExpectGet(key).SetVal("{not json")
		mock.ExpectSet(key, payload, DefaultOfficeLocationTTL).SetVal("OK")

		_, err := repo.GetByID(ctx, "office-1")

		require.NoError(t, err)
		assert.Equal(t, 1, next.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOfficeLocationCache_GetByID_CancelledCallerDoesNotAbortLoad(t *testing.T) {
	key := GetOfficeLocationDetailKey("office-1")
	payload, err := json.Marshal(hq())
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	next := &slowOffices{
		stubOffices: stubOffices{loc: hq()},
		started:     make(chan struct{}),
		release:     make(chan struct{}),
		ctxErr:      make(chan error, 1),
	}
	repo := NewOfficeLocationRepository(next, rdb, 0, discard)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, DefaultOfficeLocationTTL).SetVal("OK")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := repo.GetByID(ctx, "office-1")
		errCh <- err
	}()

	<-next.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(next.release)
	assert.NoError(t, <-next.ctxErr)
	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, time.Second, 10*time.Millisecond)

	mock.ExpectGet(key).SetVal(string(payload))
	got, err := repo.GetByID(context.Background(), "office-1")

	require.NoError(t, err)
	assert.Equal(t, hq(), got)
	assert.Equal(t, 1, next.calls)
}

func TestOfficeLocationCache_List(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &stubOffices{loc: hq()}
	repo := NewOfficeLocationRepository(next, rdb, 0, discard)

	payload, err := json.Marshal([]office.OfficeLocation{hq()})
	require.NoError(t, err)
	mock.ExpectGet(OfficeLocationListKey).RedisNil()
	mock.ExpectSet(OfficeLocationListKey, payload, DefaultOfficeLocationTTL).SetVal("OK")

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfficeLocationCache_NilClientPassesThrough(t *testing.T) {
	next := &stubOffices{loc: hq()}

	repo := NewOfficeLocationRepository(next, nil, 0, discard)

	assert.Same(t, next, repo)
}
