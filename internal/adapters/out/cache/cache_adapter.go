package cache

import (
	"context"
	"fmt"

	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// NewCacheAdapter выбирает реализацию кэша по конфигурации.
// При выключенном кэше возвращается nil-интерфейс, сервис работает без кэша
func NewCacheAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (out.CachePort, error) {
	logger = out.OrNop(logger)

	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	switch cfg.Cache.Driver {
	case config.CacheDriverLRU:
		adapter, err := NewLRUCacheAdapter(cfg, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	case config.CacheDriverRedis:
		adapter, err := NewRedisCacheAdapter(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := adapter.Ping(ctx); err != nil {
			_ = adapter.Close()
			logger.Error("cache.redis.ping.failed", out.LogFields{
				"addr":  cfg.Cache.RedisAddr,
				"error": err.Error(),
			})
			return nil, fmt.Errorf("cache.redis.ping: %w", err)
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("cache.driver.unknown: %q", cfg.Cache.Driver)
	}
}

// Closer освобождает соединения адаптера кэша, если они есть
func Closer(port out.CachePort) func() {
	if closer, ok := port.(interface{ Close() error }); ok {
		return func() { _ = closer.Close() }
	}
	return func() {}
}
