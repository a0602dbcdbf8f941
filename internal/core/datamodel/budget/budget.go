package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinanceMonthlyBudget struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    string          `gorm:"column:user_id;not null;uniqueIndex:idx_finance_budgets_user_month"`
	MonthKey  string          `gorm:"column:month_key;size:7;not null;uniqueIndex:idx_finance_budgets_user_month"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (FinanceMonthlyBudget) TableName() string {
	return "finance_monthly_budgets"
}
