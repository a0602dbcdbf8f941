package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frahmantamala/finflow/internal/cache"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/finance"
	"golang.org/x/sync/errgroup"
)

type CategorySource interface {
	EnsureDefaults(ctx context.Context, userID string) ([]finance.Category, error)
}

type TransactionSource interface {
	ListAll(ctx context.Context, userID string) ([]finance.Transaction, error)
}

type BudgetSource interface {
	EnsureCurrent(ctx context.Context, userID string) (finance.MonthlyBudget, error)
}

// Service assembles the per-user snapshot the aggregation functions work on.
type Service struct {
	categories   CategorySource
	transactions TransactionSource
	budgets      BudgetSource
	cache        cache.Cache
	logger       *slog.Logger

	// generations counts invalidations per user. A load only reaches the cache when no
	// invalidation happened while it ran. Other processes sharing a redis cache only delete.
	mu          sync.Mutex
	generations map[string]uint64
}

func NewService(categories CategorySource, transactions TransactionSource, budgets BudgetSource, c cache.Cache, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
		cache:        c,
		logger:       logger,
		generations:  make(map[string]uint64),
	}
}

func Key(userID string) string {
	return "finflow:snapshot:" + userID
}

// Get returns the user's snapshot, loading the three parts concurrently on a cache miss. An
// account without data gets the default categories and the current month's default budget.
func (s *Service) Get(ctx context.Context, userID string) (finance.Snapshot, error) {
	if cached, ok := s.fromCache(ctx, userID); ok {
		return cached, nil
	}
	generation := s.generation(userID)

	var snap finance.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.categories.EnsureDefaults(gctx, userID)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		snap.Categories = categories
		return nil
	})
	g.Go(func() error {
		txs, err := s.transactions.ListAll(gctx, userID)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		budget, err := s.budgets.EnsureCurrent(gctx, userID)
		if err != nil {
			return fmt.Errorf("load budget: %w", err)
		}
		snap.MonthlyBudget = budget
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load snapshot", "error", err, "user_id", userID)
		return finance.Snapshot{}, err
	}

	if snap.Transactions == nil {
		snap.Transactions = []finance.Transaction{}
	}
	s.toCache(ctx, userID, generation, snap)
	return snap, nil
}

func (s *Service) fromCache(ctx context.Context, userID string) (finance.Snapshot, bool) {
	raw, ok, err := s.cache.Get(ctx, Key(userID))
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot cache read failed", "error", err, "user_id", userID)
		return finance.Snapshot{}, false
	}
	if !ok {
		return finance.Snapshot{}, false
	}

	var snap finance.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt snapshot cache entry", "error", err, "user_id", userID)
		_ = s.cache.Delete(ctx, Key(userID))
		return finance.Snapshot{}, false
	}
	return snap, true
}

func (s *Service) generation(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

// toCache stores snap unless userID was invalidated after the load began. The lock is held
// across the write so an Invalidate either stops it or deletes what it wrote.
func (s *Service) toCache(ctx context.Context, userID string, generation uint64, snap finance.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot encode failed", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[userID] != generation {
		s.logger.DebugContext(ctx, "skipping stale snapshot", "user_id", userID)
		return
	}
	if err := s.cache.Set(ctx, Key(userID), raw); err != nil {
		s.logger.WarnContext(ctx, "snapshot cache write failed", "error", err, "user_id", userID)
	}
}

// Invalidate drops the cached snapshot of userID.
func (s *Service) Invalidate(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.generations[userID]++
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, Key(userID)); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

// InvalidateOnEvent is an event handler dropping the snapshot of the event's owner.
func (s *Service) InvalidateOnEvent(ctx context.Context, event events.Event) error {
	userID := events.OwnerOf(event)
	if userID == "" {
		return nil
	}
	s.logger.DebugContext(ctx, "invalidating snapshot", "user_id", userID, "event_type", event.EventType())
	return s.Invalidate(ctx, userID)
}

// Subscribe registers cache invalidation for every finance event.
func (s *Service) Subscribe(bus *events.EventBus) {
	for _, eventType := range events.FinanceEventTypes {
		bus.Subscribe(eventType, s.InvalidateOnEvent)
	}
}
