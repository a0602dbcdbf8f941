package category

import (
	"context"
	"fmt"
	"log/slog"

	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	"github.com/frahmantamala/finflow/internal/finance"
)

type RepositoryAPI interface {
	ListByUser(ctx context.Context, userID string) ([]*categoryDatamodel.FinanceCategory, error)
	GetBySlug(ctx context.Context, userID, slug string) (*categoryDatamodel.FinanceCategory, error)
	CreateMany(ctx context.Context, categories []*categoryDatamodel.FinanceCategory) error
	DeleteByUser(ctx context.Context, userID string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the user's categories ordered by label.
func (s *Service) List(ctx context.Context, userID string) ([]finance.Category, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list categories", "error", err, "user_id", userID)
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]finance.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, FromDataModel(row))
	}
	return categories, nil
}

// EnsureDefaults inserts the default categories for a user that has none and returns the
// resulting list. Existing slugs are left untouched.
func (s *Service) EnsureDefaults(ctx context.Context, userID string) ([]finance.Category, error) {
	categories, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		return categories, nil
	}

	if err := s.CreateDefaults(ctx, userID); err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

func (s *Service) CreateDefaults(ctx context.Context, userID string) error {
	defaults := Defaults()
	rows := make([]*categoryDatamodel.FinanceCategory, 0, len(defaults))
	for _, cat := range defaults {
		rows = append(rows, ToDataModel(userID, cat))
	}

	if err := s.repo.CreateMany(ctx, rows); err != nil {
		s.logger.ErrorContext(ctx, "failed to create default categories", "error", err, "user_id", userID)
		return fmt.Errorf("create default categories: %w", err)
	}

	s.logger.InfoContext(ctx, "default categories created", "user_id", userID, "count", len(rows))
	return nil
}

func (s *Service) Exists(ctx context.Context, userID, slug string) (bool, error) {
	row, err := s.repo.GetBySlug(ctx, userID, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "error checking category", "slug", slug, "error", err)
		return false, fmt.Errorf("get category: %w", err)
	}
	return row != nil, nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
