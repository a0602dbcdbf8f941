package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/finflow/internal/category"
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*categoryDatamodel.FinanceCategory, error) {
	var categories []*categoryDatamodel.FinanceCategory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("label ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, userID, slug string) (*categoryDatamodel.FinanceCategory, error) {
	var cat categoryDatamodel.FinanceCategory
	err := r.db.WithContext(ctx).Where("user_id = ? AND slug = ?", userID, slug).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// CreateMany inserts the rows, skipping slugs the user already owns.
func (r *CategoryRepository) CreateMany(ctx context.Context, categories []*categoryDatamodel.FinanceCategory) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "slug"}},
			DoNothing: true,
		}).
		Create(&categories).Error
}

func (r *CategoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&categoryDatamodel.FinanceCategory{}).Error
}
