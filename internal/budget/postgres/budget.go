package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/finflow/internal/budget"
	budgetDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/budget"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) GetByMonth(ctx context.Context, userID, monthKey string) (*budgetDatamodel.FinanceMonthlyBudget, error) {
	var row budgetDatamodel.FinanceMonthlyBudget
	err := r.db.WithContext(ctx).Where("user_id = ? AND month_key = ?", userID, monthKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the month's budget or overwrites the amount of the existing row.
func (r *BudgetRepository) Upsert(ctx context.Context, row *budgetDatamodel.FinanceMonthlyBudget) error {
	row.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(row).Error
}

// CreateIfAbsent inserts the row unless the month already has a budget, then returns whatever is
// stored. An existing amount is never touched.
func (r *BudgetRepository) CreateIfAbsent(ctx context.Context, row *budgetDatamodel.FinanceMonthlyBudget) (*budgetDatamodel.FinanceMonthlyBudget, error) {
	row.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
			DoNothing: true,
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}

	stored, err := r.GetByMonth(ctx, row.UserID, row.MonthKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("budget %s/%s missing after insert", row.UserID, row.MonthKey)
	}
	return stored, nil
}

func (r *BudgetRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&budgetDatamodel.FinanceMonthlyBudget{}).Error
}
