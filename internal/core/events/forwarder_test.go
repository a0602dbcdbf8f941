package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/finflow/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type memorySink struct {
	mu      sync.Mutex
	sent    []events.Envelope
	ctxErrs []error
	err     error
	closed  bool
}

func (s *memorySink) Send(ctx context.Context, env events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, env)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func (s *memorySink) Close() error {
	s.closed = true
	return nil
}

var _ = Describe("Envelope", func() {
	It("carries the event identity, owner and payload", func() {
		occurred := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
		event := events.NewTransactionCreatedEvent("user-1", "tx-1", "food", decimal.RequireFromString("12.50"), "manual", occurred)

		env, err := events.NewEnvelope(event)
		Expect(err).NotTo(HaveOccurred())
		Expect(env.ID).To(Equal(event.EventID()))
		Expect(env.Type).To(Equal(events.EventTypeTransactionCreated))
		Expect(env.UserID).To(Equal("user-1"))

		body, err := env.Marshal()
		Expect(err).NotTo(HaveOccurred())

		decoded, err := events.DecodeEnvelope(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Type).To(Equal(env.Type))
		Expect(decoded.UserID).To(Equal("user-1"))
		Expect(string(decoded.Payload)).To(ContainSubstring(`"transaction_id":"tx-1"`))
		Expect(string(decoded.Payload)).To(ContainSubstring(`"amount":"12.5"`))
	})

	It("rejects bodies without a type", func() {
		_, err := events.DecodeEnvelope([]byte(`{"id":"x"}`))
		Expect(err).To(MatchError(ContainSubstring("missing type")))

		_, err = events.DecodeEnvelope([]byte(`not json`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Forwarder", func() {
	var (
		bus    *events.EventBus
		sink   *memorySink
		logger *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		sink = &memorySink{}
	})

	It("forwards finance events published on the bus", func() {
		forwarder := events.NewForwarder(sink, time.Second, logger)
		forwarder.Subscribe(bus)

		Expect(bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent("u1", "2024-03", decimal.NewFromInt(900)))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewTransactionCreatedEvent("u1", "t1", "food", decimal.NewFromInt(5), "ai", time.Now()))).To(Succeed())
		Expect(forwarder.Close()).To(Succeed())

		Expect(sink.sent).To(HaveLen(2))
		Expect(sink.closed).To(BeTrue())
	})

	It("does not surface sink failures to the publisher", func() {
		sink.err = errors.New("broker down")
		forwarder := events.NewForwarder(sink, time.Second, logger)
		forwarder.Subscribe(bus)

		Expect(bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent("u1", "2024-03", decimal.Zero))).To(Succeed())
		Expect(forwarder.Close()).To(Succeed())
		Expect(sink.sent).To(HaveLen(1))
	})

	It("delivers after the request context is cancelled", func() {
		forwarder := events.NewForwarder(sink, time.Second, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(forwarder.Handle(ctx, events.NewBudgetUpdatedEvent("u1", "2024-03", decimal.Zero))).To(Succeed())
		Expect(forwarder.Close()).To(Succeed())

		Expect(sink.ctxErrs).To(ConsistOf(BeNil()))
	})
})
