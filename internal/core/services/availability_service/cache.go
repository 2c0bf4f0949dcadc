package availability_service

import (
	"context"
	"fmt"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// Кэширование расписаний артистов

func (s *AvailabilityService) getArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, error) {
	// Проверяем, инициализирован ли cachePort
	if s.cachePort != nil {
		if schedule, exists := s.cachePort.GetArtistSchedule(ctx, artistID); exists {
			return schedule, nil
		}
	}

	s.logger.Debug("artist_schedule.cache.miss", out.LogFields{
		"artistId": artistID,
	})

	schedule, err := s.storePort.GetArtistSchedule(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("artist_schedule.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreArtistSchedule(ctx, *schedule)
	}

	return schedule, nil
}

func (s *AvailabilityService) InvalidateArtistScheduleCache(ctx context.Context, artistID string) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateArtistSchedule(ctx, artistID)
	s.logger.Info("artist_schedule.cache.invalidated", out.LogFields{
		"artistId": artistID,
	})
	return nil
}

func (s *AvailabilityService) InvalidateAllArtistScheduleCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateAllArtistSchedules(ctx)
	s.logger.Info("artist_schedule.cache.invalidated_all", out.LogFields{})
	return nil
}

func (s *AvailabilityService) RefreshArtistScheduleCache(ctx context.Context, artistID string) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateArtistSchedule(ctx, artistID)
	if _, err := s.getArtistSchedule(ctx, artistID); err != nil {
		return err
	}

	s.logger.Info("artist_schedule.cache.refreshed", out.LogFields{
		"artistId": artistID,
	})
	return nil
}
