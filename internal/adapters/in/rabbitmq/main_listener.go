package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/artist-availability-engine/internal/config"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/in"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

// CacheHitListener слушает события об изменении расписаний и сбрасывает кэш
type CacheHitListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	consumerWg      sync.WaitGroup
	cancelMu        sync.Mutex
	consumerCancels []chan struct{}
	closeOnce       sync.Once
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	ResourceID   string
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll         CacheHitResourceType = "_all_"
	CacheHitResourceTypeSchedule    CacheHitResourceType = "schedule"
	CacheHitResourceTypeException   CacheHitResourceType = "exception"
	CacheHitResourceTypeAppointment CacheHitResourceType = "appointment"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

func NewCacheHitListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*CacheHitListener, error) {
	logger = out.OrNop(logger)

	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CacheHitListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *CacheHitListener) Start(ctx context.Context) error {
	if err := l.startQueue(ctx); err != nil {
		return err
	}

	l.logger.Info("availability.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.QueueConfig.QueueName,
	})
	return nil
}

func (l *CacheHitListener) Stop() error {
	if l == nil {
		return nil
	}

	l.cancelMu.Lock()
	for _, cancel := range l.consumerCancels {
		close(cancel)
	}
	l.consumerCancels = nil
	l.cancelMu.Unlock()

	l.consumerWg.Wait()

	var err error
	l.closeOnce.Do(func() {
		err = l.closeChannelAndConnection()
	})
	return err
}

func (l *CacheHitListener) addConsumerCancel(cancel chan struct{}) {
	l.cancelMu.Lock()
	defer l.cancelMu.Unlock()

	l.consumerCancels = append(l.consumerCancels, cancel)
}

// closeConnection закрывает соединение после неустранимой ошибки очереди
func (l *CacheHitListener) closeConnection(reason string) {
	l.logger.Warn("rabbitmq.connection.closing", out.LogFields{
		"reason": reason,
	})

	l.closeOnce.Do(func() {
		if err := l.closeChannelAndConnection(); err != nil {
			l.logger.Error("rabbitmq.connection.close_failed", out.LogFields{
				"error": err.Error(),
			})
		}
	})
}

func (l *CacheHitListener) closeChannelAndConnection() error {
	if l.channel != nil {
		if err := l.channel.Close(); err != nil && err != amqp.ErrClosed {
			return err
		}
	}
	if l.conn != nil {
		if err := l.conn.Close(); err != nil && err != amqp.ErrClosed {
			return err
		}
	}
	return nil
}

// Пример routingKey:
// booking.availability-engine-svc.schedule.<artistId>.invalidate
// booking.availability-engine-svc.exception.<artistId>.invalidate
// booking.availability-engine-svc.schedule.<artistId>.store
// booking.availability-engine-svc.appointment.<appointmentId>.store
// booking.availability-engine-svc._all_._all_.invalidate
func parseCacheMessageRoutingKey(msg amqp.Delivery) (CacheMessageRoutingKey, error) {
	routingKey := msg.RoutingKey
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		ResourceID:   parts[3],
		CacheHitType: CacheHitType(parts[4]),
	}, nil
}

// processMessage разбирает routing key и передает сообщение обработчику ресурса
func (l *CacheHitListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	l.logger.Debug("rabbitmq.processing_message", out.LogFields{
		"routingKey": msg.RoutingKey,
		"body":       string(msg.Body),
	})

	routingKey, err := parseCacheMessageRoutingKey(msg)
	if err != nil {
		return fmt.Errorf("failed to parse routing key: %w", err)
	}

	switch routingKey.ResourceType {
	case CacheHitResourceTypeSchedule, CacheHitResourceTypeException:
		return l.processScheduleMessage(ctx, routingKey, msg)
	case CacheHitResourceTypeAppointment:
		return l.processAppointmentMessage(ctx, routingKey, msg)
	case CacheHitResourceTypeAll:
		return l.processAllMessage(ctx, routingKey)
	default:
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"resourceType": string(routingKey.ResourceType),
		})
		return nil
	}
}
