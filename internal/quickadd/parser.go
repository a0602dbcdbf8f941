// Package quickadd turns one line of free text such as "Spent Rs. 250 at Grocery Store" into an
// expense, either through a remote extractor or the local keyword heuristics.
package quickadd

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/shopspring/decimal"
)

const (
	fallbackMerchant = "Expense"
	fallbackCategory = "shopping"
	maxMerchantWords = 3
)

// ErrNoAmount is returned when the text holds no positive amount.
var ErrNoAmount = errors.New("quickadd: no usable amount in text")

type ParsedExpense struct {
	Amount       decimal.Decimal `json:"amount"`
	Merchant     string          `json:"merchant"`
	CategorySlug string          `json:"category_slug"`
	Tags         []string        `json:"tags"`
}

type merchantRule struct {
	pattern   *regexp.Regexp
	normalize bool
}

var (
	rsAmountPattern      = regexp.MustCompile(`(?i)rs\.?\s*(\d+(?:\.\d{1,2})?)`)
	genericAmountPattern = regexp.MustCompile(`(\d+(?:\.\d{1,2})?)`)

	// Evaluated in order; the first rule with a non-empty capture names the merchant.
	merchantRules = []merchantRule{
		{pattern: regexp.MustCompile(`(?i)\bat\s+([a-z0-9 '&.-]+)`)},
		{pattern: regexp.MustCompile(`(?i)\bon\s+[a-z0-9.'-]+\s+at\s+([a-z0-9 '&.-]+)`)},
		{pattern: regexp.MustCompile(`(?i)\bfor\s+([a-z0-9 '&.-]+)`), normalize: true},
		{pattern: regexp.MustCompile(`(?i)\bon\s+([a-z0-9 '&.-]+)`), normalize: true},
	}

	rsAmountStrip    = regexp.MustCompile(`(?i)rs\.?\s*\d+(?:\.\d{1,2})?`)
	spentWordStrip   = regexp.MustCompile(`(?i)\bspent\b`)
	punctuationStrip = regexp.MustCompile(`[^\w\s&.-]`)
	numericToken     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// Parse extracts an expense from text using local heuristics only.
func Parse(text string, categories []finance.Category) (ParsedExpense, error) {
	amount, ok := extractAmount(text)
	if !ok {
		return ParsedExpense{}, ErrNoAmount
	}

	return ParsedExpense{
		Amount:       amount.Round(2),
		Merchant:     extractMerchant(text),
		CategorySlug: InferCategory(text, categories),
		Tags:         []string{},
	}, nil
}

func extractAmount(text string) (decimal.Decimal, bool) {
	match := rsAmountPattern.FindStringSubmatch(text)
	if match == nil {
		match = genericAmountPattern.FindStringSubmatch(text)
	}
	if match == nil {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(match[1])
	if err != nil || math.IsInf(amount.InexactFloat64(), 0) || !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func extractMerchant(text string) string {
	for _, rule := range merchantRules {
		match := rule.pattern.FindStringSubmatch(text)
		if match == nil || match[1] == "" {
			continue
		}
		if rule.normalize {
			return NormalizeLabel(match[1])
		}
		return strings.TrimSpace(match[1])
	}

	cleaned := rsAmountStrip.ReplaceAllString(text, "")
	cleaned = spentWordStrip.ReplaceAllString(cleaned, "")
	cleaned = punctuationStrip.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	words := make([]string, 0, maxMerchantWords)
	for _, word := range strings.Fields(cleaned) {
		if numericToken.MatchString(word) {
			continue
		}
		words = append(words, word)
		if len(words) == maxMerchantWords {
			break
		}
	}
	if len(words) > 0 {
		return NormalizeLabel(strings.Join(words, " "))
	}
	return fallbackMerchant
}

// NormalizeLabel keeps the first three words and title-cases each of them.
func NormalizeLabel(value string) string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return fallbackMerchant
	}
	if len(words) > maxMerchantWords {
		words = words[:maxMerchantWords]
	}

	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
