package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

const redisScanBatch = 100

// RedisCacheAdapter общий для нескольких инстансов кэш расписаний.
// Ошибки Redis не пробрасываются: для сервиса это промах кэша
type RedisCacheAdapter struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger out.LoggerPort
}

var _ out.CachePort = (*RedisCacheAdapter)(nil)

func NewRedisCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*RedisCacheAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	return NewRedisCacheAdapterWithClient(client, cfg.Cache.RedisPrefix, cfg.Cache.TTL, logger), nil
}

func NewRedisCacheAdapterWithClient(client *redis.Client, prefix string, ttl time.Duration, logger out.LoggerPort) *RedisCacheAdapter {
	return &RedisCacheAdapter{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: out.OrNop(logger).WithModule("RedisCacheAdapter"),
	}
}

// Ping проверка соединения при старте
func (c *RedisCacheAdapter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCacheAdapter) Close() error {
	return c.client.Close()
}

func (c *RedisCacheAdapter) GetArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, bool) {
	payload, err := c.client.Get(ctx, c.scheduleKey(artistID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache.artist_schedule.get.failed", out.LogFields{
				"artistId": artistID,
				"error":    err.Error(),
			})
		}
		return nil, false
	}

	schedule, err := decodeArtistSchedule(payload)
	if err != nil {
		c.logger.Warn("cache.artist_schedule.decode.failed", out.LogFields{
			"artistId": artistID,
			"error":    err.Error(),
		})
		return nil, false
	}

	return schedule, true
}

func (c *RedisCacheAdapter) StoreArtistSchedule(ctx context.Context, schedule domain.ArtistSchedule) {
	payload, err := json.Marshal(schedule)
	if err != nil {
		c.logger.Error("cache.artist_schedule.encode.failed", out.LogFields{
			"artistId": schedule.ArtistID,
			"error":    err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, c.scheduleKey(schedule.ArtistID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache.artist_schedule.store.failed", out.LogFields{
			"artistId": schedule.ArtistID,
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateArtistSchedule(ctx context.Context, artistID string) {
	if err := c.client.Del(ctx, c.scheduleKey(artistID)).Err(); err != nil {
		c.logger.Warn("cache.artist_schedule.invalidate.failed", out.LogFields{
			"artistId": artistID,
			"error":    err.Error(),
		})
	}
}

func (c *RedisCacheAdapter) InvalidateAllArtistSchedules(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.scheduleKey("*"), redisScanBatch).Iterator()

	keys := make([]string, 0, redisScanBatch)
	deleted := 0
	flush := func() {
		if len(keys) == 0 {
			return
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("cache.artist_schedule.invalidate_all.failed", out.LogFields{
				"error": err.Error(),
			})
		} else {
			deleted += len(keys)
		}
		keys = keys[:0]
	}

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == redisScanBatch {
			flush()
		}
	}
	flush()

	if err := iter.Err(); err != nil {
		c.logger.Warn("cache.artist_schedule.scan.failed", out.LogFields{
			"error": err.Error(),
		})
	}

	c.logger.Info("cache.artist_schedule.invalidated_all", out.LogFields{
		"deleted": deleted,
	})
}

func (c *RedisCacheAdapter) scheduleKey(artistID string) string {
	return fmt.Sprintf("%s:artist_schedule:%s", c.prefix, artistID)
}

func decodeArtistSchedule(payload []byte) (*domain.ArtistSchedule, error) {
	var schedule domain.ArtistSchedule
	if err := json.Unmarshal(payload, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}
