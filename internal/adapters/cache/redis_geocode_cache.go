package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Graceus777/Route-Optimizer/internal/domain"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed geocode cache shared across
// service instances. Writes use SET NX, so the first writer of a key
// wins and concurrent identical writes are no-ops.
type RedisGeocodeCache struct {
	client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client}
}

func (r *RedisGeocodeCache) Get(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	if r.client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	val, err := r.client.Get(ctx, redisKeyPrefix+address).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: redis get: %w", err)
	}

	c, err := decodeCoords(val)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	return c, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) error {
	if r.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	// No expiry: delivery-address coordinates are effectively static.
	if err := r.client.SetNX(ctx, redisKeyPrefix+address, encodeCoords(coords), 0).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: redis setnx: %w", err)
	}

	return nil
}

func encodeCoords(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func decodeCoords(val string) (domain.Coordinates, error) {
	lat, lng, ok := strings.Cut(val, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("parse cached value %q", val)
	}

	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse cached latitude %q: %w", lat, err)
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse cached longitude %q: %w", lng, err)
	}

	return domain.Coordinates{Lat: latF, Lng: lngF}, nil
}
