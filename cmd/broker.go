package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/core/events/amqp"
	"github.com/frahmantamala/finflow/internal/core/events/kafka"
)

// newBrokerSink returns nil when no broker is configured.
func newBrokerSink(cfg internal.EventsConfig, lg *slog.Logger) (events.Sink, error) {
	switch cfg.Broker {
	case "", "none":
		return nil, nil
	case "kafka":
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, lg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported broker %q", cfg.Broker)
	}
}

type envelopeHandler func(context.Context, events.Envelope) error

// consumeBroker blocks reading the configured broker until ctx is done.
func consumeBroker(ctx context.Context, cfg internal.EventsConfig, groupID string, handler envelopeHandler, lg *slog.Logger) error {
	switch cfg.Broker {
	case "kafka":
		consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, groupID, lg)
		defer consumer.Close()
		return consumer.Consume(ctx, handler)
	case "amqp":
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, lg)
		if err != nil {
			return err
		}
		defer client.Close()
		return client.Consume(ctx, handler)
	default:
		return fmt.Errorf("no broker configured, set events.broker to kafka or amqp")
	}
}
