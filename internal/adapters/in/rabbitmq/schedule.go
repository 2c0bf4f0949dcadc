package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

const invalidateTimeout = 10 * time.Second

// CacheScheduleMessage тело события об изменении недельного окна или исключения
type CacheScheduleMessage struct {
	ArtistID     string `json:"artistId"`
	ResourceType string `json:"resourceType"`
}

func (l *CacheHitListener) processScheduleMessage(ctx context.Context, routingKey CacheMessageRoutingKey, msg amqp.Delivery) error {
	var msgJson CacheScheduleMessage
	if len(msg.Body) > 0 {
		if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
			return fmt.Errorf("failed to unmarshal message: %w", err)
		}
	}

	artistID := msgJson.ArtistID
	if artistID == "" {
		artistID = routingKey.ResourceID
	}
	if artistID == "" {
		return fmt.Errorf("schedule message without artist id: %s", msg.RoutingKey)
	}

	l.logger.Info("artist_schedule.message.received", out.LogFields{
		"artistId":     artistID,
		"resourceType": string(routingKey.ResourceType),
		"cacheHitType": string(routingKey.CacheHitType),
	})

	invalidateCtx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	switch routingKey.CacheHitType {
	case CacheHitTypeInvalidate:
		if err := l.useCase.InvalidateArtistScheduleCache(invalidateCtx, artistID); err != nil {
			return fmt.Errorf("artist_schedule.invalidate: %w", err)
		}
	case CacheHitTypeStore:
		if err := l.useCase.RefreshArtistScheduleCache(invalidateCtx, artistID); err != nil {
			return fmt.Errorf("artist_schedule.refresh: %w", err)
		}
	}

	return nil
}
