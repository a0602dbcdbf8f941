package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logger: logger,
	}
}

// Consume hands every decodable message to handler until ctx is done. Failures are logged and
// the offset is committed anyway.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, events.Envelope) error) error {
	c.logger.InfoContext(ctx, "consuming finance events", "topic", c.reader.Config().Topic)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.InfoContext(ctx, "stopping message consumption", "reason", ctx.Err())
				return ctx.Err()
			}
			return fmt.Errorf("fetch kafka message: %w", err)
		}

		env, err := events.DecodeEnvelope(msg.Value)
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to decode message", "error", err, "offset", msg.Offset)
		} else if err := handler(ctx, env); err != nil {
			c.logger.ErrorContext(ctx, "failed to handle message", "error", err, "event_id", env.ID, "event_type", env.Type)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit kafka offset: %w", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
