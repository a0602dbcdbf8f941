package category

import (
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	"github.com/frahmantamala/finflow/internal/finance"
)

// Defaults is the category set every new account starts with.
func Defaults() []finance.Category {
	return []finance.Category{
		{Slug: "food", Label: "Food & Drink", Color: "#F4618A", Icon: "utensils"},
		{Slug: "shopping", Label: "Shopping", Color: "#CEF62E", Icon: "shopping-bag"},
		{Slug: "transport", Label: "Transport", Color: "#61A4F4", Icon: "car"},
		{Slug: "bills", Label: "Bills", Color: "#F4C761", Icon: "zap"},
		{Slug: "housing", Label: "Housing", Color: "#30E48D", Icon: "home"},
		{Slug: "entertainment", Label: "Entertainment", Color: "#C77DFF", Icon: "gamepad"},
		{Slug: "health", Label: "Health", Color: "#FF6B6B", Icon: "heart"},
		{Slug: "education", Label: "Education", Color: "#4ECDC4", Icon: "graduation-cap"},
		{Slug: "travel", Label: "Travel", Color: "#FFB86C", Icon: "plane"},
	}
}

func ToDataModel(userID string, c finance.Category) *categoryDatamodel.FinanceCategory {
	return &categoryDatamodel.FinanceCategory{
		UserID: userID,
		Slug:   c.Slug,
		Label:  c.Label,
		Color:  c.Color,
		Icon:   c.Icon,
	}
}

func FromDataModel(c *categoryDatamodel.FinanceCategory) finance.Category {
	return finance.Category{
		Slug:  c.Slug,
		Label: c.Label,
		Color: c.Color,
		Icon:  c.Icon,
	}
}
