package transaction

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/core/common/validation"
	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

const (
	MaxMerchantLength = 100
	MaxNoteLength     = 500
	MaxTags           = 10
	MaxTagLength      = 30
	MaxQuickAddLength = 280
)

// MaxAmount is the largest value a numeric(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

type CreateTransactionDTO struct {
	Merchant     string          `json:"merchant"`
	CategorySlug string          `json:"category_slug"`
	Amount       decimal.Decimal `json:"amount"`
	Tags         []string        `json:"tags"`
	Note         *string         `json:"note,omitempty"`
	OccurredAt   *time.Time      `json:"occurred_at,omitempty"`
}

func (dto *CreateTransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("merchant", dto.Merchant).
		Required(errors.ErrCodeInvalidMerchant).
		MaxLength(MaxMerchantLength, errors.ErrCodeInvalidMerchant)
	v.Field("category_slug", dto.CategorySlug).Required(errors.ErrCodeInvalidCategory)
	v.Field("amount", dto.Amount).
		Positive(errors.ErrCodeInvalidAmount).
		MaxDecimalPlaces(2, errors.ErrCodeInvalidAmount).
		MaxDecimal(MaxAmount, errors.ErrCodeAmountTooHigh)
	v.Field("tags", dto.Tags).Tags(MaxTags, MaxTagLength)
	v.Field("note", dto.Note).MaxLength(MaxNoteLength, errors.ErrCodeValidationFailed)
	v.Field("occurred_at", dto.OccurredAt).NotFuture()
	return v.Validate()
}

// Normalize trims free text and drops an empty note.
func (dto *CreateTransactionDTO) Normalize() {
	dto.Merchant = strings.TrimSpace(dto.Merchant)
	dto.CategorySlug = strings.TrimSpace(dto.CategorySlug)
	tags := make([]string, 0, len(dto.Tags))
	for _, tag := range dto.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}
	dto.Tags = tags
	if dto.Note != nil {
		note := strings.TrimSpace(*dto.Note)
		if note == "" {
			dto.Note = nil
		} else {
			dto.Note = &note
		}
	}
}

type QuickAddDTO struct {
	Text string `json:"text"`
}

func (dto *QuickAddDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("text", dto.Text).
		Required(errors.ErrCodeValidationFailed).
		MaxLength(MaxQuickAddLength, errors.ErrCodeValidationFailed)
	return v.Validate()
}

type QuickAddResult struct {
	Transaction    finance.Transaction `json:"transaction"`
	Source         string              `json:"source"`
	Confidence     float64             `json:"confidence,omitempty"`
	Reason         string              `json:"reason,omitempty"`
	FallbackReason string              `json:"fallback_reason,omitempty"`
}

type ListResponse struct {
	Transactions []finance.Transaction `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
