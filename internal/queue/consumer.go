package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
)

// Handler processes one decoded event.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

// StartConsumer runs the consumer for cfg.Broker until ctx is cancelled.
// It returns immediately when no broker is configured.
func StartConsumer(ctx context.Context, cfg config.EventConfig, h Handler, logger echo.Logger) {
	switch cfg.Broker {
	case "rabbitmq", "amqp":
		StartRabbitConsumer(ctx, cfg.RabbitURL, cfg.RabbitQueue, h, logger)
	case "kafka":
		c := NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, h, logger)
		defer c.Close()
		c.Listen(ctx)
	}
}

// StartRabbitConsumer connects to RabbitMQ, declares the durable queue and
// consumes it. Connection loss is retried with exponential backoff capped at
// 30s. A message that fails to decode or handle is rejected without
// requeue so one bad message cannot spin the loop.
func StartRabbitConsumer(ctx context.Context, url, queue string, h Handler, logger echo.Logger) {
	backoff := time.Second
	for ctx.Err() == nil {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warnf("notify-consumer: dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = rabbitLoop(ctx, conn, queue, h, logger)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		logger.Warnf("notify-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func rabbitLoop(ctx context.Context, conn *amqp.Connection, queue string, h Handler, logger echo.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		logger.Warnf("notify-consumer: set QoS: %v", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := dispatch(ctx, h, d.Body); err != nil {
				logger.Errorf("notify-consumer: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// KafkaConsumer reads the event topic as part of a consumer group.
type KafkaConsumer struct {
	reader  *kafka.Reader
	handler Handler
	logger  echo.Logger
}

func NewKafkaConsumer(brokers []string, topic, groupID string, h Handler, logger echo.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		handler: h,
		logger:  logger,
	}
}

// Listen reads until ctx is cancelled. Offsets are committed after every
// message, handled or not.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	for {
		msg, err := kc.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			kc.logger.Warnf("notify-consumer: kafka read: %v", err)
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}
		if err := dispatch(ctx, kc.handler, msg.Value); err != nil {
			kc.logger.Errorf("notify-consumer: offset %d: %v", msg.Offset, err)
		}
	}
}

func (kc *KafkaConsumer) Close() error { return kc.reader.Close() }

func dispatch(ctx context.Context, h Handler, body []byte) error {
	ev, err := decode(body)
	if err != nil {
		return err
	}
	if err := h.Handle(ctx, ev); err != nil {
		return fmt.Errorf("handle %s: %w", ev.Type, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
