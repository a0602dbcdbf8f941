package budget

import (
	budgetDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/budget"
	"github.com/frahmantamala/finflow/internal/finance"
)

func FromDataModel(m *budgetDatamodel.FinanceMonthlyBudget) finance.MonthlyBudget {
	return finance.MonthlyBudget{
		MonthKey: m.MonthKey,
		Amount:   m.Amount,
	}
}
