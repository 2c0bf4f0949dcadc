package out

import (
	"context"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
)

type CachePort interface {
	// Кэширование расписаний артистов (недельные окна + исключения)
	GetArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, bool)
	StoreArtistSchedule(ctx context.Context, schedule domain.ArtistSchedule)
	InvalidateArtistSchedule(ctx context.Context, artistID string)
	InvalidateAllArtistSchedules(ctx context.Context)
}
