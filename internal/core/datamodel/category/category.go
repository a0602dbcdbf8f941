package category

import "time"

type FinanceCategory struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_finance_categories_user_slug"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex:idx_finance_categories_user_slug"`
	Label     string    `gorm:"column:label;not null"`
	Color     string    `gorm:"column:color"`
	Icon      string    `gorm:"column:icon"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (FinanceCategory) TableName() string {
	return "finance_categories"
}
