package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/finflow/internal"
	budgetDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/budget"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

type RepositoryAPI interface {
	GetByMonth(ctx context.Context, userID, monthKey string) (*budgetDatamodel.FinanceMonthlyBudget, error)
	Upsert(ctx context.Context, budget *budgetDatamodel.FinanceMonthlyBudget) error
	// CreateIfAbsent inserts budget unless the month already has one and returns the stored row.
	CreateIfAbsent(ctx context.Context, budget *budgetDatamodel.FinanceMonthlyBudget) (*budgetDatamodel.FinanceMonthlyBudget, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type Service struct {
	repo          RepositoryAPI
	publisher     events.Publisher
	defaultAmount decimal.Decimal
	logger        *slog.Logger
	now           func() time.Time
}

func NewService(repo RepositoryAPI, publisher events.Publisher, defaultAmount decimal.Decimal, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		publisher:     publisher,
		defaultAmount: defaultAmount,
		logger:        logger,
		now:           time.Now,
	}
}

// Get returns the budget stored for monthKey. An empty key means the current month. When no
// budget was stored the configured default is returned with IsSet false.
func (s *Service) Get(ctx context.Context, userID, monthKey string) (*BudgetResponse, error) {
	if monthKey == "" {
		monthKey = finance.MonthKey(s.now())
	}
	if _, err := finance.ParseMonthKey(monthKey); err != nil {
		return nil, errors.NewValidationFieldError("month", "month must be formatted as YYYY-MM", errors.ErrCodeInvalidMonthKey)
	}

	row, err := s.repo.GetByMonth(ctx, userID, monthKey)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get budget", "error", err, "user_id", userID, "month_key", monthKey)
		return nil, fmt.Errorf("get budget: %w", err)
	}
	if row == nil {
		return &BudgetResponse{MonthKey: monthKey, Amount: s.defaultAmount}, nil
	}
	return &BudgetResponse{MonthKey: row.MonthKey, Amount: row.Amount, IsSet: true}, nil
}

// Current returns the budget of the current month as a value object.
func (s *Service) Current(ctx context.Context, userID string) (finance.MonthlyBudget, error) {
	resp, err := s.Get(ctx, userID, "")
	if err != nil {
		return finance.MonthlyBudget{}, err
	}
	return finance.MonthlyBudget{MonthKey: resp.MonthKey, Amount: resp.Amount}, nil
}

// EnsureCurrent stores the default budget for the current month if none exists yet. A budget
// written concurrently by Set always wins over the default.
func (s *Service) EnsureCurrent(ctx context.Context, userID string) (finance.MonthlyBudget, error) {
	monthKey := finance.MonthKey(s.now())
	row, err := s.repo.GetByMonth(ctx, userID, monthKey)
	if err != nil {
		return finance.MonthlyBudget{}, fmt.Errorf("get budget: %w", err)
	}
	if row != nil {
		return FromDataModel(row), nil
	}

	stored, err := s.repo.CreateIfAbsent(ctx, &budgetDatamodel.FinanceMonthlyBudget{UserID: userID, MonthKey: monthKey, Amount: s.defaultAmount})
	if err != nil {
		return finance.MonthlyBudget{}, fmt.Errorf("create default budget: %w", err)
	}
	s.logger.InfoContext(ctx, "default budget ensured", "user_id", userID, "month_key", monthKey, "amount", stored.Amount.String())
	return FromDataModel(stored), nil
}

func (s *Service) Set(ctx context.Context, userID string, dto SetBudgetDTO) (*BudgetResponse, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	monthKey := dto.MonthKey
	if monthKey == "" {
		monthKey = finance.MonthKey(s.now())
	}
	amount := dto.Amount.Round(2)

	row := &budgetDatamodel.FinanceMonthlyBudget{UserID: userID, MonthKey: monthKey, Amount: amount}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to set budget", "error", err, "user_id", userID, "month_key", monthKey)
		return nil, fmt.Errorf("set budget: %w", err)
	}

	s.logger.InfoContext(ctx, "budget updated", "user_id", userID, "month_key", monthKey, "amount", amount.String())

	if s.publisher != nil {
		if err := s.publisher.PublishSync(ctx, events.NewBudgetUpdatedEvent(userID, monthKey, amount)); err != nil {
			s.logger.WarnContext(ctx, "budget updated handlers failed", "error", err, "user_id", userID)
		}
	}

	return &BudgetResponse{MonthKey: monthKey, Amount: amount, IsSet: true}, nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
