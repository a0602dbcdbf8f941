package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/frahmantamala/finflow/internal/cache"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/snapshot"
	"github.com/spf13/cobra"
)

var workerGroupID string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume finance events from the broker",
	Long: `Read finance events from the configured broker and drop the affected snapshot from the
shared cache, so every API instance behind a Redis cache sees writes made by the others.`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	cfg, lg := bootstrap()

	c, err := cache.New(cfg.Cache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize cache: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := func(ctx context.Context, env events.Envelope) error {
		if env.UserID == "" {
			lg.WarnContext(ctx, "event without owner ignored", "event_id", env.ID, "event_type", env.Type)
			return nil
		}
		lg.InfoContext(ctx, "invalidating snapshot", "event_type", env.Type, "user_id", env.UserID)
		return c.Delete(ctx, snapshot.Key(env.UserID))
	}

	lg.Info("event worker is running. Press Ctrl+C to stop.", "broker", cfg.Events.Broker)
	if err := consumeBroker(ctx, cfg.Events, workerGroupID, handler, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("event worker stopped", "error", err)
		os.Exit(1)
	}
	lg.Info("event worker stopped")
}

func init() {
	workerCmd.Flags().StringVar(&workerGroupID, "group", "finflow-cache-invalidator", "kafka consumer group")
}
