package out

import (
	"context"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
)

// StorePort источник записей для движка. Только чтение: создание записей
// и защита от двойного бронирования находятся на стороне хранилища
type StorePort interface {
	// Расписание артиста: таймзона, недельные окна и исключения
	GetArtistSchedule(ctx context.Context, artistID string) (*domain.ArtistSchedule, error)

	// Записи на прием артиста в полуинтервале [from, to)
	GetAppointments(ctx context.Context, artistID string, from, to time.Time) ([]domain.AppointmentBlock, error)
}
