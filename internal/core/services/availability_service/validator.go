package availability_service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

var timeFormatPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateTimeFormat строго "HH:MM", часы 00-23, минуты 00-59
func ValidateTimeFormat(value string) bool {
	return timeFormatPattern.MatchString(value)
}

// ValidateTimeRange оба значения валидны и конец строго после начала
func ValidateTimeRange(startTime, endTime string) bool {
	if !ValidateTimeFormat(startTime) || !ValidateTimeFormat(endTime) {
		return false
	}
	return utils.MinutesOfDay(endTime) > utils.MinutesOfDay(startTime)
}

// BookingValidator проверки бронирования до передачи в хранилище. Состояния не хранит
type BookingValidator struct {
	rules     domain.Rules
	converter TimezoneConverter
}

func NewBookingValidator(rules domain.Rules, converter TimezoneConverter) *BookingValidator {
	return &BookingValidator{rules: rules, converter: converter}
}

// ValidateTimeSlot разрешена только одна фиксированная длительность записи
func (v *BookingValidator) ValidateTimeSlot(slotTime string, durationMinutes int) bool {
	return durationMinutes == v.durationMinutes()
}

// ValidateBookingTime момент записи не раньше now + минимальное время до записи
func (v *BookingValidator) ValidateBookingTime(instant time.Time, now time.Time) bool {
	return !instant.Before(now.Add(v.rules.MinAdvance))
}

// ValidateBooking проверки по порядку: идентификаторы, дата, формат времени,
// время до записи, длительность. Возвращается первая ошибка
func (v *BookingValidator) ValidateBooking(request domain.BookingRequest, timezone string, now time.Time) domain.ValidationResult {
	if strings.TrimSpace(request.ArtistID) == "" || strings.TrimSpace(request.ClientID) == "" {
		return domain.InvalidResult(domain.ValidationCodeMissingIdentifier, domain.MessageMissingIdentifier)
	}

	if _, err := time.Parse(dateLayout, request.Date); err != nil {
		return domain.InvalidResult(domain.ValidationCodeInvalidDate, domain.MessageInvalidDate)
	}

	if !ValidateTimeFormat(request.Time) {
		return domain.InvalidResult(domain.ValidationCodeInvalidTimeFormat, domain.MessageInvalidTimeFormat)
	}

	instant, err := v.converter.ToUTCInstant(request.Date, request.Time, timezone)
	if err != nil {
		return domain.InvalidResult(domain.ValidationCodeInvalidDate, domain.MessageInvalidDate)
	}

	if !v.ValidateBookingTime(instant, now) {
		return domain.InvalidResult(
			domain.ValidationCodeAdvanceNoticeViolation,
			domain.AdvanceNoticeMessage(v.rules.MinAdvance),
		)
	}

	if request.DurationMinutes != 0 {
		if result := v.ValidateDuration(request.DurationMinutes); !result.Valid {
			return result
		}
	}

	return domain.ValidResult()
}

func (v *BookingValidator) ValidateDuration(durationMinutes int) domain.ValidationResult {
	if !v.ValidateTimeSlot("", durationMinutes) {
		return domain.InvalidResult(
			domain.ValidationCodeUnsupportedDuration,
			fmt.Sprintf(domain.MessageUnsupportedDuration, v.durationMinutes()),
		)
	}
	return domain.ValidResult()
}

func (v *BookingValidator) ValidateRange(startTime, endTime string) domain.ValidationResult {
	if !ValidateTimeRange(startTime, endTime) {
		return domain.InvalidResult(domain.ValidationCodeInvalidTimeRange, domain.MessageInvalidTimeRange)
	}
	return domain.ValidResult()
}

func (v *BookingValidator) durationMinutes() int {
	return int(v.rules.AppointmentDuration / time.Minute)
}
