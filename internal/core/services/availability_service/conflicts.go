package availability_service

import (
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

// Соседние метки, которые блокирует одна запись: слот до и слот после начала записи
const conflictNeighbourMinutes = 30

const minutesPerDay = 24 * 60

// ConflictFilter помечает занятые и прошедшие слоты
type ConflictFilter struct {
	converter TimezoneConverter
	buffer    time.Duration
	logger    out.LoggerPort
}

func NewConflictFilter(converter TimezoneConverter, buffer time.Duration, logger out.LoggerPort) *ConflictFilter {
	return &ConflictFilter{
		converter: converter,
		buffer:    buffer,
		logger:    out.OrNop(logger),
	}
}

type FilterInput struct {
	Candidates        []string
	Date              string
	Appointments      []domain.AppointmentBlock
	ArtistTimezone    string
	RequesterTimezone string
	Now               time.Time
}

// Filter сохраняет порядок кандидатов. Слот недоступен, если его метка заблокирована
// записью, или если дата сегодняшняя и слот начинается не позже now + buffer
func (f *ConflictFilter) Filter(input FilterInput) []domain.Slot {
	blocked := f.blockedLabels(input.Date, input.Appointments, input.ArtistTimezone)

	requesterTimezone := input.RequesterTimezone
	if requesterTimezone == "" {
		requesterTimezone = input.ArtistTimezone
	}
	isToday := input.Date == f.converter.TodayInTimezone(requesterTimezone, input.Now)
	cutoff := input.Now.Add(f.buffer)

	slots := make([]domain.Slot, 0, len(input.Candidates))
	pastCount := 0
	for _, candidate := range input.Candidates {
		_, isBooked := blocked[candidate]

		isPast := false
		if isToday {
			isPast = f.isPast(input.Date, candidate, input.ArtistTimezone, cutoff)
			if isPast {
				pastCount++
			}
		}

		slots = append(slots, domain.Slot{
			Time:        candidate,
			Available:   !isBooked && !isPast,
			DisplayTime: utils.FormatTime(candidate),
		})
	}

	f.logger.Debug("slots.filter.applied", out.LogFields{
		"date":       input.Date,
		"candidates": len(input.Candidates),
		"blocked":    len(blocked),
		"past":       pastCount,
		"isToday":    isToday,
	})

	return slots
}

func (f *ConflictFilter) isPast(date, slotTime, timezone string, cutoff time.Time) bool {
	instant, err := f.converter.ToUTCInstant(date, slotTime, timezone)
	if err != nil {
		// Если не смогли вычислить момент, слот не предлагаем
		return true
	}
	return !instant.After(cutoff)
}

// blockedLabels метки "HH:MM", занятые записями на эту дату в таймзоне артиста:
// метка начала записи и по одной соседней получасовой метке с каждой стороны.
// Это приближение часовой записи на получасовой сетке, а не пересечение интервалов:
// запись, начинающаяся не по сетке, не блокирует ни одного слота
func (f *ConflictFilter) blockedLabels(date string, appointments []domain.AppointmentBlock, timezone string) map[string]struct{} {
	blocked := make(map[string]struct{})

	for _, appointment := range appointments {
		if !appointment.Blocking() {
			continue
		}

		appointmentDate, clock := f.converter.ToWallClock(appointment.ScheduledAt, timezone)
		if appointmentDate != date {
			continue
		}

		start := utils.MinutesOfDay(clock)
		for _, delta := range []int{-conflictNeighbourMinutes, 0, conflictNeighbourMinutes} {
			label := start + delta
			if label < 0 || label >= minutesPerDay {
				continue
			}
			blocked[utils.FormatMinutes(label)] = struct{}{}
		}
	}

	return blocked
}
