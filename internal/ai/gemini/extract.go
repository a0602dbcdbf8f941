package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/finflow/internal/quickadd"
	"github.com/shopspring/decimal"
)

const defaultConfidence = 0.6

var ErrInvalidExtraction = errors.New("invalid AI response format")

func extractionPrompt(req quickadd.ExtractionRequest) string {
	slugs := make([]string, 0, len(req.Categories))
	guide := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		if c.Slug == "" {
			continue
		}
		slugs = append(slugs, c.Slug)
		guide = append(guide, c.Slug+": "+c.Label)
	}

	allowed := strings.Join(slugs, ", ")
	if allowed == "" {
		allowed = "shopping"
	}
	categoryMap := strings.Join(guide, ", ")
	if categoryMap == "" {
		categoryMap = "shopping: Shopping"
	}

	return strings.Join([]string{
		"Extract a finance transaction from this user text.",
		"Return JSON only with keys:",
		"merchant (string), amount (number), categorySlug (string), confidence (number 0..1), reason (string).",
		fmt.Sprintf("Allowed categorySlug values: %s.", allowed),
		fmt.Sprintf("Category map: %s.", categoryMap),
		fmt.Sprintf("User text: %s", strings.TrimSpace(req.Text)),
	}, "\n")
}

type rawExtraction struct {
	Merchant     *string  `json:"merchant"`
	Amount       *float64 `json:"amount"`
	CategorySlug *string  `json:"categorySlug"`
	Confidence   *float64 `json:"confidence"`
	Reason       *string  `json:"reason"`
}

// parseExtraction validates the model output. merchant, amount and categorySlug are required;
// a slug outside the allowed list is replaced by the first allowed one.
func parseExtraction(text string, categories []quickadd.CategoryRef) (*quickadd.Extraction, error) {
	var raw rawExtraction
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtraction, err)
	}
	if raw.Merchant == nil || raw.Amount == nil || raw.CategorySlug == nil {
		return nil, ErrInvalidExtraction
	}

	out := &quickadd.Extraction{
		Merchant:     strings.TrimSpace(*raw.Merchant),
		Amount:       decimal.NewFromFloat(*raw.Amount).Round(2),
		CategorySlug: *raw.CategorySlug,
		Confidence:   defaultConfidence,
		Reason:       "AI parse",
	}
	if out.Merchant == "" {
		out.Merchant = "Expense"
	}
	if raw.Confidence != nil {
		out.Confidence = *raw.Confidence
	}
	if raw.Reason != nil {
		out.Reason = *raw.Reason
	}

	if len(categories) > 0 && !allowed(categories, out.CategorySlug) {
		out.CategorySlug = categories[0].Slug
	}
	return out, nil
}

func allowed(categories []quickadd.CategoryRef, slug string) bool {
	for _, c := range categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// ExtractExpense asks the model for a structured transaction. Any failure is returned to the
// caller, which falls back to the heuristic parser.
func (c *Client) ExtractExpense(ctx context.Context, req quickadd.ExtractionRequest) (*quickadd.Extraction, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("text is required")
	}

	texts, err := c.generate(ctx, c.extractor, extractionPrompt(req))
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, ErrInvalidExtraction
	}

	return parseExtraction(texts[0], req.Categories)
}
