// Package cache keeps hotel reference data in Redis. Every method degrades to
// a cache miss on error, so callers always have the database to fall back on.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/eventstay/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "hotels"

type RedisHotelCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisHotelCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *RedisHotelCache {
	return &RedisHotelCache{client: client, ttl: ttl, log: log}
}

func listKey() string {
	return keyPrefix + ":list"
}

func hotelKey(id uint) string {
	return fmt.Sprintf("%s:%d", keyPrefix, id)
}

func (c *RedisHotelCache) GetHotels(ctx context.Context) ([]models.Hotel, bool) {
	var hotels []models.Hotel
	if !c.get(ctx, listKey(), &hotels) {
		return nil, false
	}
	return hotels, true
}

func (c *RedisHotelCache) SetHotels(ctx context.Context, hotels []models.Hotel) {
	c.set(ctx, listKey(), hotels)
}

func (c *RedisHotelCache) GetHotel(ctx context.Context, id uint) (*models.Hotel, bool) {
	var hotel models.Hotel
	if !c.get(ctx, hotelKey(id), &hotel) {
		return nil, false
	}
	return &hotel, true
}

func (c *RedisHotelCache) SetHotel(ctx context.Context, hotel *models.Hotel) {
	c.set(ctx, hotelKey(hotel.ID), hotel)
}

func (c *RedisHotelCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).WithField("key", key).Warn("hotel cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("hotel cache entry is corrupt")
		return false
	}
	return true
}

func (c *RedisHotelCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("hotel cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("hotel cache write failed")
	}
}
