package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

const (
	setupAttempts   = 3
	setupRetryDelay = 500 * time.Millisecond
)

// withRetry повторяет шаг настройки очереди, после последней попытки закрывает соединение
func (l *CacheHitListener) withRetry(step string, fields out.LogFields, fn func() error) error {
	var err error
	for attempt := 1; attempt <= setupAttempts; attempt++ {
		if err = fn(); err == nil {
			l.logger.Info("rabbitmq."+step+".success", fields)
			return nil
		}

		retryFields := out.LogFields{"attempt": attempt, "error": err.Error()}
		for k, v := range fields {
			retryFields[k] = v
		}
		l.logger.Warn("rabbitmq."+step+".retry", retryFields)

		if attempt < setupAttempts {
			time.Sleep(setupRetryDelay)
		}
	}

	l.closeConnection(fmt.Sprintf("failed to %s: %s", step, err.Error()))
	return fmt.Errorf("rabbitmq.%s: %w", step, err)
}

func (l *CacheHitListener) startQueue(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	queueConfig := l.cfg.RabbitMq.QueueConfig
	exchangeName := queueConfig.Exchange

	err := l.withRetry("exchange_declare", out.LogFields{"exchange": exchangeName}, func() error {
		return l.channel.ExchangeDeclare(
			exchangeName, // имя обменника
			"topic",      // тип обменника
			true,         // durable
			false,        // auto-delete
			false,        // internal
			false,        // no-wait
			nil,          // аргументы
		)
	})
	if err != nil {
		return err
	}

	var queue amqp.Queue
	err = l.withRetry("queue_declare", out.LogFields{"queue": queueConfig.QueueName}, func() error {
		var declareErr error
		queue, declareErr = l.channel.QueueDeclare(
			queueConfig.QueueName,
			true,  // durable
			true,  // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		return declareErr
	})
	if err != nil {
		return err
	}

	bindingKey := queueConfig.QueueBind
	err = l.withRetry("queue_bind", out.LogFields{"queue": queue.Name, "binding": bindingKey, "exchange": exchangeName}, func() error {
		return l.channel.QueueBind(queue.Name, bindingKey, exchangeName, false, nil)
	})
	if err != nil {
		return err
	}

	consumerID := fmt.Sprintf("consumer-%s-%d", queue.Name, time.Now().UnixNano())
	var msgs <-chan amqp.Delivery
	err = l.withRetry("consume", out.LogFields{"queue": queue.Name, "consumerID": consumerID}, func() error {
		var consumeErr error
		msgs, consumeErr = l.channel.Consume(
			queue.Name,
			consumerID,
			false, // auto-ack, подтверждаем вручную
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,   // args
		)
		return consumeErr
	})
	if err != nil {
		return err
	}

	consumerCancel := make(chan struct{})
	l.addConsumerCancel(consumerCancel)
	l.consumerWg.Add(1)

	go l.consume(ctx, queue.Name, consumerID, msgs, consumerCancel)

	return nil
}

func (l *CacheHitListener) consume(ctx context.Context, queueName, consumerID string, msgs <-chan amqp.Delivery, cancel <-chan struct{}) {
	defer l.consumerWg.Done()

	fields := out.LogFields{"queue": queueName, "consumerID": consumerID}
	l.logger.Info("rabbitmq.consumer.started", fields)

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("rabbitmq.consumer.stopping_by_context", fields)
			return
		case <-cancel:
			l.logger.Info("rabbitmq.consumer.stopping_by_cancel", fields)
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("rabbitmq.consumer.channel_closed", fields)
				l.closeConnection(fmt.Sprintf("consumer channel closed for queue %s", queueName))
				return
			}
			l.handleDelivery(ctx, msg)
		}
	}
}

// handleDelivery сообщение с ошибкой отклоняется без возврата в очередь
func (l *CacheHitListener) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	if err := l.processMessage(ctx, msg); err != nil {
		l.logger.Error("rabbitmq.process_message.failed", out.LogFields{
			"routingKey": msg.RoutingKey,
			"messageId":  msg.MessageId,
			"error":      err.Error(),
		})
		if err := msg.Nack(false, false); err != nil {
			l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
				"error": err.Error(),
			})
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
			"error": err.Error(),
		})
	}
}
