package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeBudgetUpdated      = "budget.updated"
)

// FinanceEventTypes lists every event the finance services emit.
var FinanceEventTypes = []string{EventTypeTransactionCreated, EventTypeBudgetUpdated}

type TransactionCreatedEvent struct {
	BaseEvent
	TransactionID string          `json:"transaction_id"`
	CategorySlug  string          `json:"category_slug"`
	Amount        decimal.Decimal `json:"amount"`
	Source        string          `json:"source"`
}

func NewTransactionCreatedEvent(userID, transactionID, categorySlug string, amount decimal.Decimal, source string, occurredAt time.Time) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeTransactionCreated,
			Timestamp: time.Now(),
			UserID:    userID,
			Data: map[string]interface{}{
				"transaction_id": transactionID,
				"category_slug":  categorySlug,
				"amount":         amount.String(),
				"source":         source,
				"occurred_at":    occurredAt.UTC().Format(time.RFC3339),
			},
		},
		TransactionID: transactionID,
		CategorySlug:  categorySlug,
		Amount:        amount,
		Source:        source,
	}
}

type BudgetUpdatedEvent struct {
	BaseEvent
	MonthKey string          `json:"month_key"`
	Amount   decimal.Decimal `json:"amount"`
}

func NewBudgetUpdatedEvent(userID, monthKey string, amount decimal.Decimal) *BudgetUpdatedEvent {
	return &BudgetUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeBudgetUpdated,
			Timestamp: time.Now(),
			UserID:    userID,
			Data: map[string]interface{}{
				"month_key": monthKey,
				"amount":    amount.String(),
			},
		},
		MonthKey: monthKey,
		Amount:   amount,
	}
}

// OwnerOf returns the user id carried by events built on BaseEvent.
func OwnerOf(event Event) string {
	if owned, ok := event.(interface{ Owner() string }); ok {
		return owned.Owner()
	}
	return ""
}
