package rabbitmq

import (
	"context"
	"fmt"

	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// Изменение, затрагивающее всех артистов: очищаем весь кэш расписаний
func (l *CacheHitListener) processAllMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	if routingKey.CacheHitType != CacheHitTypeInvalidate {
		return nil
	}

	invalidateCtx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	if err := l.useCase.InvalidateAllArtistScheduleCache(invalidateCtx); err != nil {
		return fmt.Errorf("artist_schedule.invalidate_all: %w", err)
	}

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"artist_schedule_cache": true,
	})
	return nil
}
