package report

import (
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

type LedgerItem struct {
	finance.Transaction
	TimeLabel     string `json:"time_label"`
	CategoryLabel string `json:"category_label"`
	CategoryColor string `json:"category_color"`
}

type LedgerGroup struct {
	Date  string       `json:"date"`
	Items []LedgerItem `json:"items"`
}

type LedgerResponse struct {
	Category    string          `json:"category"`
	Query       string          `json:"query"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Groups      []LedgerGroup   `json:"groups"`
}

// BuildLedger filters the snapshot's transactions and groups them by day relative to now.
func BuildLedger(s finance.Snapshot, filter finance.LedgerFilter, now time.Time) LedgerResponse {
	filtered := finance.FilterLedger(s.Transactions, filter)

	byslug := make(map[string]finance.Category, len(s.Categories))
	for _, c := range s.Categories {
		byslug[c.Slug] = c
	}

	total := decimal.Zero
	groups := make([]LedgerGroup, 0)
	for _, group := range finance.GroupByDateAt(filtered, now) {
		items := make([]LedgerItem, 0, len(group.Items))
		for _, tx := range group.Items {
			total = total.Add(tx.Amount)
			cat := byslug[tx.CategorySlug]
			items = append(items, LedgerItem{
				Transaction:   tx,
				TimeLabel:     finance.FormatTimeLabel(tx.OccurredAt),
				CategoryLabel: cat.Label,
				CategoryColor: cat.Color,
			})
		}
		groups = append(groups, LedgerGroup{Date: group.Date, Items: items})
	}

	category := filter.Category
	if category == "" {
		category = finance.AllCategories
	}
	return LedgerResponse{
		Category:    category,
		Query:       filter.Query,
		Count:       len(filtered),
		TotalAmount: total,
		Groups:      groups,
	}
}
