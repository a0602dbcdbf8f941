package budget

import (
	errors "github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

var MaxBudget = decimal.RequireFromString("9999999999.99")

// SetBudgetDTO sets the budget of MonthKey, or of the current month when MonthKey is empty.
type SetBudgetDTO struct {
	Amount   decimal.Decimal `json:"amount"`
	MonthKey string          `json:"month_key,omitempty"`
}

func (dto *SetBudgetDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).
		NonNegative(errors.ErrCodeInvalidAmount).
		MaxDecimalPlaces(2, errors.ErrCodeInvalidAmount).
		MaxDecimal(MaxBudget, errors.ErrCodeAmountTooHigh)
	if dto.MonthKey != "" {
		v.Field("month_key", dto.MonthKey).MonthKey()
	}
	return v.Validate()
}

type BudgetResponse struct {
	MonthKey string          `json:"month_key"`
	Amount   decimal.Decimal `json:"amount"`
	IsSet    bool            `json:"is_set"`
}
