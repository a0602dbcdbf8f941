package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish test finance events through the configured broker`,
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [event-type]",
	Short:     "Publish a test event",
	Long:      `Publish a finance event to the configured broker for testing the worker and other consumers`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: events.FinanceEventTypes,
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var (
	eventUserID string
	eventAmount string
)

func publishTestEvent(eventType string) {
	cfg, lg := bootstrap()

	userID := eventUserID
	if userID == "" {
		userID = cfg.Security.DefaultUserID
	}
	amount, err := decimal.NewFromString(eventAmount)
	if err != nil {
		log.Fatalf("invalid amount %q: %v", eventAmount, err)
	}

	var event events.Event
	switch eventType {
	case events.EventTypeTransactionCreated:
		event = events.NewTransactionCreatedEvent(userID, uuid.NewString(), "food", amount, "cli", time.Now())
	case events.EventTypeBudgetUpdated:
		event = events.NewBudgetUpdatedEvent(userID, finance.MonthKey(time.Now()), amount)
	default:
		log.Fatalf("unknown event type %q, expected one of %v", eventType, events.FinanceEventTypes)
	}

	sink, err := newBrokerSink(cfg.Events, lg)
	if err != nil {
		log.Fatalf("failed to connect to broker: %v", err)
	}
	if sink == nil {
		log.Fatal("no broker configured, set events.broker to kafka or amqp")
	}
	defer sink.Close()

	env, err := events.NewEnvelope(event)
	if err != nil {
		log.Fatalf("failed to encode event: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), events.DefaultForwardTimeout)
	defer cancel()

	if err := sink.Send(ctx, env); err != nil {
		log.Fatalf("failed to publish event: %v", err)
	}

	fmt.Printf("Published %s %s for %s via %s\n", env.Type, env.ID, env.UserID, cfg.Events.Broker)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventUserID, "user", "", "owner of the event (defaults to security.default_user_id)")
	publishEventCmd.Flags().StringVar(&eventAmount, "amount", "12.50", "amount carried by the event")

	eventCmd.AddCommand(publishEventCmd)
}
