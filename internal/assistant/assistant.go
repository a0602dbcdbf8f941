package assistant

import (
	"context"
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

const RecentTransactionLimit = 10

type CategoryTotal struct {
	Slug  string          `json:"slug"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

type RecentTransaction struct {
	Merchant   string          `json:"merchant"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	OccurredAt time.Time       `json:"occurredAt"`
	Tags       []string        `json:"tags"`
}

// ChatContext is the finance summary sent along with every question.
type ChatContext struct {
	MonthBudget        decimal.Decimal     `json:"monthBudget"`
	MonthSpent         decimal.Decimal     `json:"monthSpent"`
	Categories         []CategoryTotal     `json:"categories"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

type ChatRequest struct {
	Question string      `json:"question"`
	Context  ChatContext `json:"context"`
}

// Chatter answers a question about the supplied context.
type Chatter interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

// BuildContext summarizes the snapshot for the month containing now. Every category is listed,
// including those without spending.
func BuildContext(s finance.Snapshot, now time.Time) ChatContext {
	monthKey := finance.MonthKey(now)

	totals := make(map[string]decimal.Decimal, len(s.Categories))
	for _, spend := range finance.CategoryBreakdown(s.Categories, s.Transactions, monthKey) {
		totals[spend.Slug] = spend.Value
	}

	categories := make([]CategoryTotal, 0, len(s.Categories))
	for _, c := range s.Categories {
		categories = append(categories, CategoryTotal{Slug: c.Slug, Label: c.Label, Total: totals[c.Slug]})
	}

	recent := finance.RecentTransactions(s.Transactions, RecentTransactionLimit)
	recentTxs := make([]RecentTransaction, 0, len(recent))
	for _, tx := range recent {
		tags := tx.Tags
		if tags == nil {
			tags = []string{}
		}
		recentTxs = append(recentTxs, RecentTransaction{
			Merchant:   tx.Merchant,
			Amount:     tx.Amount,
			Category:   tx.CategorySlug,
			OccurredAt: tx.OccurredAt,
			Tags:       tags,
		})
	}

	return ChatContext{
		MonthBudget:        s.MonthlyBudget.Amount,
		MonthSpent:         finance.MonthlySpent(s.Transactions, monthKey),
		Categories:         categories,
		RecentTransactions: recentTxs,
	}
}
