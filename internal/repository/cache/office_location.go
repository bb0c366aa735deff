package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/office"
)

const (
	OfficeLocationDetailKeyPrefix = "office_locations:detail:"
	OfficeLocationListKey         = "office_locations:list"

	DefaultOfficeLocationTTL = 10 * time.Minute

	// sharedLoadTimeout bounds a load shared by concurrent callers
	sharedLoadTimeout = 5 * time.Second
)

func GetOfficeLocationDetailKey(id string) string {
	return OfficeLocationDetailKeyPrefix + id
}

// officeLocationRepository serves office lookups from redis, falling back
// to the wrapped repository. Concurrent misses for one key share a single load.
type officeLocationRepository struct {
	next   office.OfficeLocationRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	ttl    time.Duration
	logger *slog.Logger
}

// NewOfficeLocationRepository wraps next with a read-through cache.
// A nil client returns next unchanged.
func NewOfficeLocationRepository(next office.OfficeLocationRepository, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) office.OfficeLocationRepository {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = DefaultOfficeLocationTTL
	}
	return &officeLocationRepository{
		next:   next,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		ttl:    ttl,
		logger: logger.With("component", "office_location_cache"),
	}
}

// GetByID implements office.OfficeLocationRepository.
func (r *officeLocationRepository) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	key := GetOfficeLocationDetailKey(id)

	var loc office.OfficeLocation
	if r.lookup(ctx, key, &loc) {
		return loc, nil
	}

	v, err := r.load(ctx, key, func(ctx context.Context) (interface{}, error) {
		return r.next.GetByID(ctx, id)
	})
	if err != nil {
		return office.OfficeLocation{}, err
	}

	return v.(office.OfficeLocation), nil
}

// List implements office.OfficeLocationRepository.
func (r *officeLocationRepository) List(ctx context.Context) ([]office.OfficeLocation, error) {
	var locs []office.OfficeLocation
	if r.lookup(ctx, OfficeLocationListKey, &locs) {
		return locs, nil
	}

	v, err := r.load(ctx, OfficeLocationListKey, func(ctx context.Context) (interface{}, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.([]office.OfficeLocation), nil
}

// load runs fetch once per key for all concurrent callers and caches the result.
// The shared load is detached from the caller that started it, so one cancelled
// request does not fail the others; each caller still stops waiting on its own ctx.
func (r *officeLocationRepository) load(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := r.sf.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		v, err := fetch(loadCtx)
		if err != nil {
			return nil, err
		}
		r.store(loadCtx, key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// lookup decodes key into dst. Any redis or decode failure reads as a miss.
func (r *officeLocationRepository) lookup(ctx context.Context, key string, dst interface{}) bool {
	cached, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("office location cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		r.logger.Warn("discarding undecodable office location cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (r *officeLocationRepository) store(ctx context.Context, key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("office location cache write failed", "key", key, "error", err)
	}
}
