package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultForwardTimeout = 5 * time.Second

// Sink delivers envelopes to an external broker.
type Sink interface {
	Send(ctx context.Context, env Envelope) error
	Close() error
}

// Forwarder copies bus events to a Sink off the caller's path. Delivery failures are logged
// and never reach the publisher.
type Forwarder struct {
	sink    Sink
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewForwarder(sink Sink, timeout time.Duration, logger *slog.Logger) *Forwarder {
	if timeout <= 0 {
		timeout = DefaultForwardTimeout
	}
	return &Forwarder{sink: sink, timeout: timeout, logger: logger}
}

func (f *Forwarder) Handle(ctx context.Context, event Event) error {
	env, err := NewEnvelope(event)
	if err != nil {
		f.logger.ErrorContext(ctx, "event not forwarded", "event_type", event.EventType(), "error", err)
		return nil
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()

		if err := f.sink.Send(sendCtx, env); err != nil {
			f.logger.ErrorContext(sendCtx, "event forwarding failed",
				"event_type", env.Type,
				"event_id", env.ID,
				"error", err)
			return
		}
		f.logger.DebugContext(sendCtx, "event forwarded", "event_type", env.Type, "event_id", env.ID)
	}()
	return nil
}

// Subscribe forwards every finance event published on bus.
func (f *Forwarder) Subscribe(bus *EventBus) {
	for _, eventType := range FinanceEventTypes {
		bus.Subscribe(eventType, f.Handle)
	}
}

// Close waits for in-flight deliveries and closes the sink.
func (f *Forwarder) Close() error {
	f.wg.Wait()
	return f.sink.Close()
}
