package availability_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// Максимальный диапазон для поиска доступных дат
const MaxDateRangeDays = 62

type AvailabilityService struct {
	storePort out.StorePort
	cachePort out.CachePort
	engine    *Engine
	logger    out.LoggerPort
	now       func() time.Time
}

var _ in.AvailabilityUseCase = (*AvailabilityService)(nil)

func NewAvailabilityService(
	storePort out.StorePort,
	cachePort out.CachePort,
	engine *Engine,
	logger out.LoggerPort,
) *AvailabilityService {
	return &AvailabilityService{
		storePort: storePort,
		cachePort: cachePort,
		engine:    engine,
		logger:    out.OrNop(logger).WithModule("AvailabilityService"),
		now:       time.Now,
	}
}

// WithClock подменяет источник текущего времени
func (s *AvailabilityService) WithClock(now func() time.Time) *AvailabilityService {
	s.now = now
	return s
}

func (s *AvailabilityService) GetAvailableSlots(ctx context.Context, query in.SlotsQuery) ([]domain.Slot, []domain.DebugInfo, error) {
	debugInfo := availabilityServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}

	date, err := time.Parse(dateLayout, query.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("slots.date.parse_failed: %w", domain.ErrInvalidDate)
	}

	s.logger.Info("slots.get.started", out.LogFields{
		"artistId": query.ArtistID,
		"date":     query.Date,
	})

	fetchScheduleDebug := domain.StartDebugInfo("slots.schedule.fetch")
	schedule, err := s.getArtistSchedule(ctx, query.ArtistID)
	if err != nil {
		s.logger.Error("slots.schedule.fetch_failed", out.LogFields{
			"artistId": query.ArtistID,
			"error":    err.Error(),
		})
		return nil, nil, err
	}
	fetchScheduleDebug.Elapse()
	debugInfo.AddDebugInfo(fetchScheduleDebug)

	fetchAppointmentsDebug := domain.StartDebugInfo("slots.appointments.fetch")
	// Берем сутки с запасом с обеих сторон, чтобы покрыть любую таймзону артиста
	appointments, err := s.storePort.GetAppointments(ctx, query.ArtistID, date.AddDate(0, 0, -1), date.AddDate(0, 0, 2))
	if err != nil {
		s.logger.Error("slots.appointments.fetch_failed", out.LogFields{
			"artistId": query.ArtistID,
			"error":    err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.appointments.fetch_failed: %w", err)
	}
	fetchAppointmentsDebug.AddOption("count", fmt.Sprint(len(appointments)))
	fetchAppointmentsDebug.Elapse()
	debugInfo.AddDebugInfo(fetchAppointmentsDebug)

	computeDebug := domain.StartDebugInfo("slots.compute")
	slots, err := s.engine.AvailableSlots(SlotsInput{
		Date:              query.Date,
		ArtistTimezone:    schedule.Timezone,
		RequesterTimezone: query.RequesterTimezone,
		Windows:           schedule.Windows,
		Exceptions:        schedule.Exceptions,
		Appointments:      appointments,
		Now:               s.now(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("slots.compute_failed: %w", domain.ErrInvalidDate)
	}
	computeDebug.Elapse()
	debugInfo.AddDebugInfo(computeDebug)

	s.logger.Debug("slots.get.finished", out.LogFields{
		"artistId": query.ArtistID,
		"date":     query.Date,
		"slots":    len(slots),
	})

	return slots, debugInfo.data, nil
}

func (s *AvailabilityService) GetAvailableDates(ctx context.Context, query in.DatesQuery) ([]time.Time, error) {
	start, err := time.Parse(dateLayout, query.Start)
	if err != nil {
		return nil, fmt.Errorf("dates.start.parse_failed: %w", domain.ErrInvalidDate)
	}
	if query.Days <= 0 || query.Days > MaxDateRangeDays {
		return nil, fmt.Errorf("dates.days.out_of_range %d: %w", query.Days, domain.ErrInvalidRange)
	}

	schedule, err := s.getArtistSchedule(ctx, query.ArtistID)
	if err != nil {
		s.logger.Error("dates.schedule.fetch_failed", out.LogFields{
			"artistId": query.ArtistID,
			"error":    err.Error(),
		})
		return nil, err
	}

	appointments, err := s.storePort.GetAppointments(ctx, query.ArtistID, start.AddDate(0, 0, -1), start.AddDate(0, 0, query.Days+1))
	if err != nil {
		s.logger.Error("dates.appointments.fetch_failed", out.LogFields{
			"artistId": query.ArtistID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("dates.appointments.fetch_failed: %w", err)
	}

	return s.engine.AvailableDates(DatesInput{
		Start:             start,
		Days:              query.Days,
		ArtistTimezone:    schedule.Timezone,
		RequesterTimezone: query.RequesterTimezone,
		Windows:           schedule.Windows,
		Exceptions:        schedule.Exceptions,
		Appointments:      appointments,
		Now:               s.now(),
	})
}

func (s *AvailabilityService) ValidateBooking(ctx context.Context, request domain.BookingRequest) (domain.ValidationResult, error) {
	validator := s.engine.Validator()
	now := s.now()

	// Без идентификаторов хранилище не трогаем, ошибка будет MISSING_IDENTIFIER
	if strings.TrimSpace(request.ArtistID) == "" || strings.TrimSpace(request.ClientID) == "" {
		return validator.ValidateBooking(request, s.engine.Rules().DefaultTimezone, now), nil
	}

	schedule, err := s.getArtistSchedule(ctx, request.ArtistID)
	if err != nil {
		s.logger.Error("booking.validate.schedule.fetch_failed", out.LogFields{
			"artistId": request.ArtistID,
			"error":    err.Error(),
		})
		return domain.ValidationResult{}, err
	}

	result := validator.ValidateBooking(request, schedule.Timezone, now)
	if !result.Valid {
		s.logger.Info("booking.validate.rejected", out.LogFields{
			"artistId": request.ArtistID,
			"clientId": request.ClientID,
			"code":     string(result.Code),
		})
	}

	return result, nil
}
