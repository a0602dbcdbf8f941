package quickadd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

const (
	DefaultConfidenceThreshold = 0.6

	// RejectionMessage is shown when neither the extractor nor the heuristics found an amount.
	RejectionMessage = "Add a valid amount, for example: Spent Rs. 250 at Grocery Store"
)

type CategoryRef struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

type ExtractionRequest struct {
	Text       string        `json:"text"`
	Categories []CategoryRef `json:"categories"`
}

// Extraction is what a remote extractor returned for one piece of text.
type Extraction struct {
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	CategorySlug string          `json:"categorySlug"`
	Confidence   float64         `json:"confidence"`
	Reason       string          `json:"reason"`
}

type Extractor interface {
	ExtractExpense(ctx context.Context, req ExtractionRequest) (*Extraction, error)
}

type Outcome string

const (
	OutcomeAIAccepted        Outcome = "ai"
	OutcomeHeuristicAccepted Outcome = "heuristic"
	OutcomeRejected          Outcome = "rejected"
)

// Resolution is the result of one quick-add attempt. Expense is meaningful unless Outcome is
// OutcomeRejected.
type Resolution struct {
	Outcome        Outcome
	Expense        ParsedExpense
	Confidence     float64
	Reason         string
	FallbackReason string
}

func (r Resolution) Accepted() bool {
	return r.Outcome != OutcomeRejected
}

var (
	errLowConfidence   = errors.New("confidence below threshold")
	errUnknownCategory = errors.New("unknown category")
	errNonPositive     = errors.New("amount is not positive")
)

type Resolver struct {
	extractor Extractor
	threshold float64
	logger    *slog.Logger
}

// NewResolver builds a resolver. A nil extractor disables the remote step.
func NewResolver(extractor Extractor, threshold float64, logger *slog.Logger) *Resolver {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Resolver{extractor: extractor, threshold: threshold, logger: logger}
}

// Resolve tries the extractor once and falls back to Parse when the call fails or its answer
// does not pass the acceptance checks.
func (r *Resolver) Resolve(ctx context.Context, text string, categories []finance.Category) Resolution {
	fallbackReason := "ai disabled"

	if r.extractor != nil {
		extraction, err := r.extractor.ExtractExpense(ctx, ExtractionRequest{
			Text:       strings.TrimSpace(text),
			Categories: categoryRefs(categories),
		})
		if err == nil {
			err = r.accept(extraction, categories)
		}
		if err == nil {
			return Resolution{
				Outcome: OutcomeAIAccepted,
				Expense: ParsedExpense{
					Amount:       extraction.Amount.Round(2),
					Merchant:     extraction.Merchant,
					CategorySlug: extraction.CategorySlug,
					Tags:         []string{},
				},
				Confidence: extraction.Confidence,
				Reason:     extraction.Reason,
			}
		}
		fallbackReason = err.Error()
		r.logger.InfoContext(ctx, "quick add falling back to heuristics", "reason", fallbackReason)
	}

	parsed, err := Parse(text, categories)
	if err != nil {
		return Resolution{
			Outcome:        OutcomeRejected,
			Reason:         RejectionMessage,
			FallbackReason: fallbackReason,
		}
	}

	return Resolution{
		Outcome:        OutcomeHeuristicAccepted,
		Expense:        parsed,
		FallbackReason: fallbackReason,
	}
}

func (r *Resolver) accept(extraction *Extraction, categories []finance.Category) error {
	if extraction == nil {
		return errors.New("empty extraction")
	}
	if extraction.Confidence < r.threshold {
		return errLowConfidence
	}
	if !hasCategory(categories, extraction.CategorySlug) {
		return errUnknownCategory
	}
	if !extraction.Amount.Round(2).IsPositive() {
		return errNonPositive
	}
	return nil
}

func hasCategory(categories []finance.Category, slug string) bool {
	for _, cat := range categories {
		if cat.Slug == slug {
			return true
		}
	}
	return false
}

func categoryRefs(categories []finance.Category) []CategoryRef {
	refs := make([]CategoryRef, 0, len(categories))
	for _, cat := range categories {
		refs = append(refs, CategoryRef{Slug: cat.Slug, Label: cat.Label})
	}
	return refs
}
