package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/finflow/internal"
	transactionDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/quickadd"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	Create(ctx context.Context, tx *transactionDatamodel.FinanceTransaction) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*transactionDatamodel.FinanceTransaction, error)
	ListAllByUser(ctx context.Context, userID string) ([]*transactionDatamodel.FinanceTransaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// CategoryLister provides the categories a transaction may reference.
type CategoryLister interface {
	EnsureDefaults(ctx context.Context, userID string) ([]finance.Category, error)
}

type QuickAddResolver interface {
	Resolve(ctx context.Context, text string, categories []finance.Category) quickadd.Resolution
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryLister
	resolver   QuickAddResolver
	publisher  events.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, categories CategoryLister, resolver QuickAddResolver, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		resolver:   resolver,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates and stores a manually entered transaction.
func (s *Service) Create(ctx context.Context, userID string, dto CreateTransactionDTO) (*finance.Transaction, error) {
	dto.Normalize()
	if appErr := dto.Validate(); appErr != nil {
		s.logger.WarnContext(ctx, "transaction validation failed", "error", appErr, "user_id", userID)
		return nil, appErr
	}

	categories, err := s.categories.EnsureDefaults(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasCategory(categories, dto.CategorySlug) {
		return nil, errors.NewValidationFieldError("category_slug", "category does not exist", errors.ErrCodeInvalidCategory)
	}

	occurredAt := s.now()
	if dto.OccurredAt != nil {
		occurredAt = *dto.OccurredAt
	}

	tx := finance.Transaction{
		ID:           uuid.NewString(),
		Merchant:     dto.Merchant,
		CategorySlug: dto.CategorySlug,
		Amount:       dto.Amount,
		Tags:         dto.Tags,
		Note:         dto.Note,
		OccurredAt:   occurredAt,
	}
	if err := s.store(ctx, userID, tx, SourceManual); err != nil {
		return nil, err
	}
	return &tx, nil
}

// QuickAdd turns free text into a stored transaction through the AI and heuristic chain.
func (s *Service) QuickAdd(ctx context.Context, userID string, dto QuickAddDTO) (*QuickAddResult, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, appErr
	}

	categories, err := s.categories.EnsureDefaults(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolution := s.resolver.Resolve(ctx, dto.Text, categories)
	if !resolution.Accepted() {
		s.logger.InfoContext(ctx, "quick add rejected", "user_id", userID, "fallback_reason", resolution.FallbackReason)
		return nil, errors.ErrQuickAddUnparseable.WithDetails(map[string]string{"hint": quickadd.RejectionMessage})
	}

	if resolution.Expense.Amount.GreaterThan(MaxAmount) {
		return nil, errors.NewValidationFieldError("text", "amount must not exceed "+MaxAmount.String(), errors.ErrCodeAmountTooHigh)
	}

	note := strings.TrimSpace(dto.Text)
	tx := finance.Transaction{
		ID:           uuid.NewString(),
		Merchant:     truncateRunes(resolution.Expense.Merchant, MaxMerchantLength),
		CategorySlug: resolution.Expense.CategorySlug,
		Amount:       resolution.Expense.Amount,
		Tags:         resolution.Expense.Tags,
		Note:         &note,
		OccurredAt:   s.now(),
	}

	source := SourceHeuristic
	if resolution.Outcome == quickadd.OutcomeAIAccepted {
		source = SourceAI
	}
	if err := s.store(ctx, userID, tx, source); err != nil {
		return nil, err
	}

	return &QuickAddResult{
		Transaction:    tx,
		Source:         source,
		Confidence:     resolution.Confidence,
		Reason:         resolution.Reason,
		FallbackReason: resolution.FallbackReason,
	}, nil
}

func (s *Service) store(ctx context.Context, userID string, tx finance.Transaction, source string) error {
	if err := s.repo.Create(ctx, ToDataModel(userID, tx)); err != nil {
		s.logger.ErrorContext(ctx, "failed to create transaction", "error", err, "user_id", userID)
		return fmt.Errorf("create transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "transaction created",
		"transaction_id", tx.ID,
		"user_id", userID,
		"category", tx.CategorySlug,
		"amount", tx.Amount.String(),
		"source", source)

	if s.publisher != nil {
		event := events.NewTransactionCreatedEvent(userID, tx.ID, tx.CategorySlug, tx.Amount, source, tx.OccurredAt)
		if err := s.publisher.PublishSync(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "transaction created handlers failed", "error", err, "transaction_id", tx.ID)
		}
	}
	return nil
}

// List returns one newest-first page of the user's transactions and the total count.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]finance.Transaction, int64, error) {
	rows, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list transactions", "error", err, "user_id", userID)
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	return FromDataModels(rows), total, nil
}

// ListAll returns every transaction of the user, newest first.
func (s *Service) ListAll(ctx context.Context, userID string) ([]finance.Transaction, error) {
	rows, err := s.repo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	return FromDataModels(rows), nil
}

// Import stores prepared transactions without publishing events. Used by the seeder.
func (s *Service) Import(ctx context.Context, userID string, txs []finance.Transaction) error {
	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		if err := s.repo.Create(ctx, ToDataModel(userID, tx)); err != nil {
			return fmt.Errorf("import transaction %s: %w", tx.Merchant, err)
		}
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}

func hasCategory(categories []finance.Category, slug string) bool {
	for _, c := range categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
