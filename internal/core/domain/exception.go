package domain

import (
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
)

type ExceptionType string

const (
	ExceptionTypeUnavailable ExceptionType = "UNAVAILABLE"
	ExceptionTypeCustomHours ExceptionType = "CUSTOM_HOURS"
)

// AvailabilityException переопределение расписания на конкретную дату
type AvailabilityException struct {
	ArtistID  string          `json:"artistId"`
	Date      json_types.Date `json:"date"`
	Type      ExceptionType   `json:"type"`
	StartTime *string         `json:"startTime,omitempty"`
	EndTime   *string         `json:"endTime,omitempty"`
	Reason    *string         `json:"reason,omitempty"`
}
