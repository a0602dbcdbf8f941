package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceTransaction struct {
	ID           string          `gorm:"primaryKey;column:id"`
	UserID       string          `gorm:"column:user_id;not null;index:idx_finance_transactions_user_occurred,priority:1"`
	Merchant     string          `gorm:"column:merchant;not null"`
	CategorySlug string          `gorm:"column:category_slug;not null"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Tags         []string        `gorm:"column:tags;serializer:json"`
	Note         *string         `gorm:"column:note"`
	OccurredAt   time.Time       `gorm:"column:occurred_at;not null;index:idx_finance_transactions_user_occurred,priority:2"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (FinanceTransaction) TableName() string {
	return "finance_transactions"
}
