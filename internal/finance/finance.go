// Package finance holds the finance domain values and the pure aggregations computed over a
// user's snapshot. Every timestamp is read in the local calendar (time.Local).
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	monthKeyLayout = "2006-01"
	dayKeyLayout   = "2006-01-02"

	// DefaultSeriesMonths is the window used by MonthSeries when no length is given.
	DefaultSeriesMonths = 6
)

type Category struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Transaction struct {
	ID           string          `json:"id"`
	Merchant     string          `json:"merchant"`
	CategorySlug string          `json:"category_slug"`
	Amount       decimal.Decimal `json:"amount"`
	Tags         []string        `json:"tags"`
	Note         *string         `json:"note,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

type MonthlyBudget struct {
	MonthKey string          `json:"month_key"`
	Amount   decimal.Decimal `json:"amount"`
}

// Snapshot is everything the aggregations need for one user.
type Snapshot struct {
	Categories    []Category    `json:"categories"`
	Transactions  []Transaction `json:"transactions"`
	MonthlyBudget MonthlyBudget `json:"monthly_budget"`
}

type CategorySpend struct {
	Slug  string          `json:"slug"`
	Label string          `json:"label"`
	Color string          `json:"color"`
	Value decimal.Decimal `json:"value"`
}

type MonthPoint struct {
	MonthKey string          `json:"month_key"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
}

type DayPoint struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

type DateGroup struct {
	Date  string        `json:"date"`
	Items []Transaction `json:"items"`
}

// MonthKey returns the zero-padded YYYY-MM of t in local time.
func MonthKey(t time.Time) string {
	return t.Local().Format(monthKeyLayout)
}

// PreviousMonthKey returns the month key of the calendar month before t.
func PreviousMonthKey(t time.Time) string {
	local := t.Local()
	return MonthKey(time.Date(local.Year(), local.Month()-1, 1, 0, 0, 0, 0, time.Local))
}

func IsSameMonth(t time.Time, monthKey string) bool {
	return MonthKey(t) == monthKey
}

// ParseMonthKey validates a YYYY-MM key and returns the first local instant of that month.
func ParseMonthKey(monthKey string) (time.Time, error) {
	t, err := time.ParseInLocation(monthKeyLayout, monthKey, time.Local)
	if err != nil || t.Format(monthKeyLayout) != monthKey {
		return time.Time{}, fmt.Errorf("invalid month key %q", monthKey)
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

func dayKey(t time.Time) string {
	return t.Local().Format(dayKeyLayout)
}
