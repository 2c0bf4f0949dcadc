package domain

import (
	"fmt"
	"time"
)

type ValidationCode string

const (
	ValidationCodeInvalidDate            ValidationCode = "INVALID_DATE"
	ValidationCodeInvalidTimeFormat      ValidationCode = "INVALID_TIME_FORMAT"
	ValidationCodeInvalidTimeRange       ValidationCode = "INVALID_TIME_RANGE"
	ValidationCodeMissingIdentifier      ValidationCode = "MISSING_IDENTIFIER"
	ValidationCodeAdvanceNoticeViolation ValidationCode = "ADVANCE_NOTICE_VIOLATION"
	ValidationCodeUnsupportedDuration    ValidationCode = "UNSUPPORTED_DURATION"
)

// ValidationResult результат проверки бронирования. Ошибки ввода
// возвращаются данными, а не через error
type ValidationResult struct {
	Valid bool           `json:"valid"`
	Code  ValidationCode `json:"code,omitempty"`
	Error string         `json:"error,omitempty"`
}

func ValidResult() ValidationResult {
	return ValidationResult{Valid: true}
}

func InvalidResult(code ValidationCode, message string) ValidationResult {
	return ValidationResult{Valid: false, Code: code, Error: message}
}

const (
	MessageMissingIdentifier   = "Artist ID and client ID are required"
	MessageInvalidDate         = "Invalid date"
	MessageInvalidTimeFormat   = "Invalid time format. Use HH:MM"
	MessageInvalidTimeRange    = "End time must be after start time"
	MessageUnsupportedDuration = "Appointments must be exactly %d minutes"
)

// AdvanceNoticeMessage целые часы пишутся в часах, остальное в минутах
func AdvanceNoticeMessage(advance time.Duration) string {
	if advance%time.Hour == 0 {
		return fmt.Sprintf("Booking must be at least %s in advance", pluralUnit(int(advance/time.Hour), "hour"))
	}
	return fmt.Sprintf("Booking must be at least %s in advance", pluralUnit(int(advance/time.Minute), "minute"))
}

func pluralUnit(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}

// BookingRequest данные, которые приходят перед созданием записи
type BookingRequest struct {
	ArtistID        string `json:"artistId"`
	ClientID        string `json:"clientId"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}
