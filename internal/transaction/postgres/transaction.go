package postgres

import (
	"context"

	transactionDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finflow/internal/transaction"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *transactionDatamodel.FinanceTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*transactionDatamodel.FinanceTransaction, error) {
	var rows []*transactionDatamodel.FinanceTransaction
	err := r.newestFirst(ctx, userID).
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *TransactionRepository) ListAllByUser(ctx context.Context, userID string) ([]*transactionDatamodel.FinanceTransaction, error) {
	var rows []*transactionDatamodel.FinanceTransaction
	err := r.newestFirst(ctx, userID).Find(&rows).Error
	return rows, err
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&transactionDatamodel.FinanceTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *TransactionRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&transactionDatamodel.FinanceTransaction{}).Error
}

func (r *TransactionRepository) newestFirst(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Order("created_at DESC")
}
