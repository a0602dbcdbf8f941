package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthlySpent sums the amounts of the transactions that fall in monthKey.
func MonthlySpent(txs []Transaction, monthKey string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if IsSameMonth(tx.OccurredAt, monthKey) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryBreakdown returns the month's spend per known category, largest first.
// Categories without spend are left out and transactions with an unknown slug are ignored.
func CategoryBreakdown(cats []Category, txs []Transaction, monthKey string) []CategorySpend {
	totals := make(map[string]decimal.Decimal, len(cats))
	for _, tx := range txs {
		if !IsSameMonth(tx.OccurredAt, monthKey) {
			continue
		}
		totals[tx.CategorySlug] = totals[tx.CategorySlug].Add(tx.Amount)
	}

	breakdown := make([]CategorySpend, 0, len(cats))
	for _, cat := range cats {
		value := totals[cat.Slug]
		if !value.IsPositive() {
			continue
		}
		breakdown = append(breakdown, CategorySpend{
			Slug:  cat.Slug,
			Label: cat.Label,
			Color: cat.Color,
			Value: value,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Value.GreaterThan(breakdown[j].Value)
	})
	return breakdown
}

// MonthSeries returns one point per month for the `months` months ending with the month of ref,
// oldest first. A non-positive months yields an empty series; callers pick the default.
func MonthSeries(txs []Transaction, months int, ref time.Time) []MonthPoint {
	if months <= 0 {
		return []MonthPoint{}
	}
	local := ref.Local()

	series := make([]MonthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		first := time.Date(local.Year(), local.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
		key := MonthKey(first)
		series = append(series, MonthPoint{
			MonthKey: key,
			Month:    first.Format("Jan"),
			Amount:   MonthlySpent(txs, key),
		})
	}
	return series
}

// WeeklySeries returns Monday..Sunday totals for the week containing ref.
// Each day covers [local midnight, next local midnight).
func WeeklySeries(txs []Transaction, ref time.Time) []DayPoint {
	local := ref.Local()
	offset := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		offset = 6
	}

	series := make([]DayPoint, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		start := time.Date(local.Year(), local.Month(), local.Day()-offset+i, 0, 0, 0, 0, time.Local)
		end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, time.Local)

		total := decimal.Zero
		for _, tx := range txs {
			if !tx.OccurredAt.Before(start) && tx.OccurredAt.Before(end) {
				total = total.Add(tx.Amount)
			}
		}
		series = append(series, DayPoint{Day: label, Amount: total})
	}
	return series
}
