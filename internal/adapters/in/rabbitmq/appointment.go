package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

type CacheAppointmentMessage struct {
	Appointment domain.AppointmentBlock `json:"appointment"`
}

// Записи на прием не кэшируются и читаются на каждый запрос,
// поэтому событие только логируется
func (l *CacheHitListener) processAppointmentMessage(ctx context.Context, routingKey CacheMessageRoutingKey, msg amqp.Delivery) error {
	var msgJson CacheAppointmentMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"appointmentId": msgJson.Appointment.ID.String(),
		"artistId":      msgJson.Appointment.ArtistID,
		"status":        string(msgJson.Appointment.Status),
		"cacheHitType":  string(routingKey.CacheHitType),
	})

	return nil
}
