package transaction

import (
	transactionDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finflow/internal/finance"
)

// Transaction sources recorded on the created event.
const (
	SourceManual    = "manual"
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

func ToDataModel(userID string, t finance.Transaction) *transactionDatamodel.FinanceTransaction {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &transactionDatamodel.FinanceTransaction{
		ID:           t.ID,
		UserID:       userID,
		Merchant:     t.Merchant,
		CategorySlug: t.CategorySlug,
		Amount:       t.Amount,
		Tags:         tags,
		Note:         t.Note,
		OccurredAt:   t.OccurredAt,
	}
}

func FromDataModel(m *transactionDatamodel.FinanceTransaction) finance.Transaction {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return finance.Transaction{
		ID:           m.ID,
		Merchant:     m.Merchant,
		CategorySlug: m.CategorySlug,
		Amount:       m.Amount,
		Tags:         tags,
		Note:         m.Note,
		OccurredAt:   m.OccurredAt,
	}
}

func FromDataModels(rows []*transactionDatamodel.FinanceTransaction) []finance.Transaction {
	out := make([]finance.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
