package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

type artistScheduleEntry struct {
	schedule  domain.ArtistSchedule
	timestamp time.Time
}

// LRUCacheAdapter кэш расписаний артистов в памяти процесса
type LRUCacheAdapter struct {
	cache  *lru.Cache[string, *artistScheduleEntry]
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
	logger out.LoggerPort
}

var _ out.CachePort = (*LRUCacheAdapter)(nil)

func NewLRUCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*LRUCacheAdapter, error) {
	logger = out.OrNop(logger)

	cache, err := lru.New[string, *artistScheduleEntry](cfg.Cache.SchedulesSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SchedulesSize,
		})
		return nil, err
	}

	return &LRUCacheAdapter{
		cache:  cache,
		ttl:    cfg.Cache.TTL,
		now:    time.Now,
		logger: logger.WithModule("LRUCacheAdapter"),
	}, nil
}

func (c *LRUCacheAdapter) GetArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, bool) {
	c.mu.RLock()
	entry, exists := c.cache.Get(artistID)
	c.mu.RUnlock()

	if !exists {
		c.logger.Debug("cache.artist_schedule.get.miss", out.LogFields{
			"artistId": artistID,
		})
		return nil, false
	}

	// ttl <= 0 значит без срока жизни
	if c.ttl > 0 && c.now().Sub(entry.timestamp) > c.ttl {
		c.logger.Debug("cache.artist_schedule.get.expired", out.LogFields{
			"artistId": artistID,
			"storedAt": entry.timestamp,
		})
		c.mu.Lock()
		c.cache.Remove(artistID)
		c.mu.Unlock()
		return nil, false
	}

	c.logger.Debug("cache.artist_schedule.get.hit", out.LogFields{
		"artistId":   artistID,
		"windows":    len(entry.schedule.Windows),
		"exceptions": len(entry.schedule.Exceptions),
	})

	schedule := entry.schedule
	return &schedule, true
}

func (c *LRUCacheAdapter) StoreArtistSchedule(ctx context.Context, schedule domain.ArtistSchedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(schedule.ArtistID, &artistScheduleEntry{
		schedule:  schedule,
		timestamp: c.now(),
	})

	c.logger.Debug("cache.artist_schedule.store", out.LogFields{
		"artistId": schedule.ArtistID,
	})
}

func (c *LRUCacheAdapter) InvalidateArtistSchedule(ctx context.Context, artistID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(artistID)
}

func (c *LRUCacheAdapter) InvalidateAllArtistSchedules(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
