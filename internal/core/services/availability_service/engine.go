package availability_service

import (
	"fmt"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

const dateLayout = json_types.DateLayout

// Engine чистый расчет слотов: без ввода-вывода и общего изменяемого состояния,
// безопасен для одновременного вызова. Текущее время всегда передается явно
type Engine struct {
	rules     domain.Rules
	converter TimezoneConverter
	resolver  *ScheduleResolver
	filter    *ConflictFilter
	validator *BookingValidator
	logger    out.LoggerPort
}

func NewEngine(rules domain.Rules, converter TimezoneConverter, logger out.LoggerPort) *Engine {
	logger = out.OrNop(logger)
	if converter == nil {
		converter = NewTimezoneConverter(TimezoneConverterProbe, rules.DefaultTimezone, logger)
	}

	return &Engine{
		rules:     rules,
		converter: converter,
		resolver:  NewScheduleResolver(logger),
		filter:    NewConflictFilter(converter, rules.PastSlotBuffer, logger),
		validator: NewBookingValidator(rules, converter),
		logger:    logger,
	}
}

type SlotsInput struct {
	// Дата "YYYY-MM-DD" в таймзоне артиста
	Date              string
	ArtistTimezone    string
	RequesterTimezone string
	Windows           []domain.WeeklyScheduleWindow
	Exceptions        []domain.AvailabilityException
	Appointments      []domain.AppointmentBlock
	Now               time.Time
}

// AvailableSlots ScheduleResolver -> GenerateSlotTimes -> ConflictFilter
func (e *Engine) AvailableSlots(input SlotsInput) ([]domain.Slot, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("slots.date.invalid: %w", err)
	}

	window := e.resolver.Resolve(utils.GetDayOfWeek(date), input.Windows, input.Exceptions, date)
	if window == nil {
		return []domain.Slot{}, nil
	}

	candidates := GenerateSlotTimes(window.StartTime, window.EndTime, e.rules.SlotInterval)

	e.logger.Debug("slots.generate.candidates", out.LogFields{
		"date":       input.Date,
		"startTime":  window.StartTime,
		"endTime":    window.EndTime,
		"candidates": candidates,
	})

	return e.filter.Filter(FilterInput{
		Candidates:        candidates,
		Date:              input.Date,
		Appointments:      input.Appointments,
		ArtistTimezone:    input.ArtistTimezone,
		RequesterTimezone: input.RequesterTimezone,
		Now:               input.Now,
	}), nil
}

type DatesInput struct {
	Start             time.Time
	Days              int
	ArtistTimezone    string
	RequesterTimezone string
	Windows           []domain.WeeklyScheduleWindow
	Exceptions        []domain.AvailabilityException
	Appointments      []domain.AppointmentBlock
	Now               time.Time
}

// AvailableDates даты диапазона, на которые есть хотя бы один доступный слот
func (e *Engine) AvailableDates(input DatesInput) ([]time.Time, error) {
	dates := make([]time.Time, 0)

	for _, day := range utils.GetDateRange(input.Start, input.Days) {
		slots, err := e.AvailableSlots(SlotsInput{
			Date:              day.Format(dateLayout),
			ArtistTimezone:    input.ArtistTimezone,
			RequesterTimezone: input.RequesterTimezone,
			Windows:           input.Windows,
			Exceptions:        input.Exceptions,
			Appointments:      input.Appointments,
			Now:               input.Now,
		})
		if err != nil {
			return nil, err
		}

		if hasAvailableSlot(slots) {
			dates = append(dates, day)
		}
	}

	return dates, nil
}

func (e *Engine) Validator() *BookingValidator {
	return e.validator
}

func (e *Engine) Converter() TimezoneConverter {
	return e.converter
}

func (e *Engine) Rules() domain.Rules {
	return e.rules
}

func hasAvailableSlot(slots []domain.Slot) bool {
	for _, slot := range slots {
		if slot.Available {
			return true
		}
	}
	return false
}
