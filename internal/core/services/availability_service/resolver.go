package availability_service

import (
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

// ScheduleResolver сводит недельное расписание и исключения в один рабочий интервал на дату
type ScheduleResolver struct {
	logger out.LoggerPort
}

func NewScheduleResolver(logger out.LoggerPort) *ScheduleResolver {
	return &ScheduleResolver{logger: out.OrNop(logger)}
}

// Resolve возвращает рабочий интервал на дату или nil, если день закрыт.
// Порядок: UNAVAILABLE -> CUSTOM_HOURS -> активное недельное окно.
// CUSTOM_HOURS открывает день даже без активного недельного окна
func (r *ScheduleResolver) Resolve(dayOfWeek int, windows []domain.WeeklyScheduleWindow, exceptions []domain.AvailabilityException, date time.Time) *domain.WorkingWindow {
	exception := findException(exceptions, date)

	// UNAVAILABLE закрывает день независимо от расписания
	if exception != nil && exception.Type == domain.ExceptionTypeUnavailable {
		r.logger.Debug("slots.resolve.closed.unavailable", out.LogFields{
			"date": date.Format(dateLayout),
		})
		return nil
	}

	if exception != nil && exception.Type == domain.ExceptionTypeCustomHours {
		return r.resolveCustomHours(exception, date)
	}

	window := r.findActiveWindow(windows, dayOfWeek)
	if window == nil {
		r.logger.Debug("slots.resolve.closed.no_window", out.LogFields{
			"date":      date.Format(dateLayout),
			"dayOfWeek": dayOfWeek,
		})
		return nil
	}

	if !ValidateTimeRange(window.StartTime, window.EndTime) {
		r.logger.Warn("slots.resolve.window.invalid", out.LogFields{
			"dayOfWeek": dayOfWeek,
			"startTime": window.StartTime,
			"endTime":   window.EndTime,
		})
		return nil
	}

	return &domain.WorkingWindow{
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
	}
}

// Кривое исключение CUSTOM_HOURS закрывает день, а не придумывает часы
func (r *ScheduleResolver) resolveCustomHours(exception *domain.AvailabilityException, date time.Time) *domain.WorkingWindow {
	if exception.StartTime == nil || exception.EndTime == nil ||
		!ValidateTimeRange(*exception.StartTime, *exception.EndTime) {
		r.logger.Warn("slots.resolve.custom_hours.invalid", out.LogFields{
			"date":      date.Format(dateLayout),
			"startTime": exception.StartTime,
			"endTime":   exception.EndTime,
		})
		return nil
	}

	return &domain.WorkingWindow{
		StartTime: *exception.StartTime,
		EndTime:   *exception.EndTime,
	}
}

// Берем первое активное окно на день недели, дубликаты только логируем
func (r *ScheduleResolver) findActiveWindow(windows []domain.WeeklyScheduleWindow, dayOfWeek int) *domain.WeeklyScheduleWindow {
	var found *domain.WeeklyScheduleWindow
	duplicates := 0

	for i := range windows {
		if !windows[i].IsActive || windows[i].DayOfWeek != dayOfWeek {
			continue
		}
		if found == nil {
			found = &windows[i]
			continue
		}
		duplicates++
	}

	if duplicates > 0 {
		r.logger.Warn("slots.resolve.window.duplicates", out.LogFields{
			"artistId":   found.ArtistID,
			"dayOfWeek":  dayOfWeek,
			"duplicates": duplicates,
			"used":       found.StartTime + "-" + found.EndTime,
		})
	}

	return found
}

func findException(exceptions []domain.AvailabilityException, date time.Time) *domain.AvailabilityException {
	for i := range exceptions {
		if utils.IsSameDay(exceptions[i].Date.Date, date) {
			return &exceptions[i]
		}
	}
	return nil
}
