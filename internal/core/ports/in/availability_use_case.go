package in

import (
	"context"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
)

type SlotsQuery struct {
	ArtistID string
	// Дата в формате YYYY-MM-DD в таймзоне артиста
	Date string
	// Таймзона клиента, по ней решаем, является ли дата "сегодня"
	RequesterTimezone string
}

type DatesQuery struct {
	ArtistID          string
	Start             string
	Days              int
	RequesterTimezone string
}

type AvailabilityUseCase interface {
	// Слоты артиста на одну дату
	GetAvailableSlots(ctx context.Context, query SlotsQuery) ([]domain.Slot, []domain.DebugInfo, error)

	// Даты в диапазоне, на которые есть хотя бы один свободный слот
	GetAvailableDates(ctx context.Context, query DatesQuery) ([]time.Time, error)

	// Проверка бронирования перед сохранением
	ValidateBooking(ctx context.Context, request domain.BookingRequest) (domain.ValidationResult, error)

	// Инвалидация кэша расписаний
	InvalidateArtistScheduleCache(ctx context.Context, artistID string) error
	InvalidateAllArtistScheduleCache(ctx context.Context) error

	// Перечитывает расписание из хранилища и кладет в кэш
	RefreshArtistScheduleCache(ctx context.Context, artistID string) error
}
