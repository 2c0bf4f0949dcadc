package domain

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoshow    AppointmentStatus = "noshow"
)

// AppointmentBlock уже забронированное время. Движок его только читает
type AppointmentBlock struct {
	ID              uuid.UUID         `json:"id"`
	ArtistID        string            `json:"artistId"`
	ClientID        string            `json:"clientId"`
	ScheduledAt     time.Time         `json:"scheduledAt"`
	Status          AppointmentStatus `json:"status"`
	DurationMinutes int               `json:"durationMinutes"`
}

// Blocking отмененные записи не участвуют в поиске конфликтов
func (a AppointmentBlock) Blocking() bool {
	return a.Status != AppointmentStatusCancelled
}
