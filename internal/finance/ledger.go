package finance

import (
	"sort"
	"strings"
	"time"
)

const AllCategories = "all"

type LedgerFilter struct {
	Category string
	Query    string
}

// SortNewestFirst returns a copy of txs ordered by OccurredAt descending. Equal timestamps keep
// their input order.
func SortNewestFirst(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.After(sorted[j].OccurredAt)
	})
	return sorted
}

// GroupByDate groups txs by local calendar day, newest day first, labelled relative to now.
func GroupByDate(txs []Transaction) []DateGroup {
	return GroupByDateAt(txs, time.Now())
}

func GroupByDateAt(txs []Transaction, now time.Time) []DateGroup {
	groups := []DateGroup{}
	currentKey := ""
	for _, tx := range SortNewestFirst(txs) {
		key := dayKey(tx.OccurredAt)
		if len(groups) == 0 || key != currentKey {
			groups = append(groups, DateGroup{Date: FormatDateGroupLabel(tx.OccurredAt, now)})
			currentKey = key
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, tx)
	}
	return groups
}

// FormatDateGroupLabel renders "Today, Jan 2", "Yesterday, Jan 2" or "Jan 2, 2006".
func FormatDateGroupLabel(t, now time.Time) string {
	day := startOfDay(t)
	today := startOfDay(now)
	yesterday := time.Date(today.Year(), today.Month(), today.Day()-1, 0, 0, 0, 0, time.Local)

	switch {
	case day.Equal(today):
		return "Today, " + day.Format("Jan 2")
	case day.Equal(yesterday):
		return "Yesterday, " + day.Format("Jan 2")
	default:
		return day.Format("Jan 2, 2006")
	}
}

// FormatTimeLabel renders the local time of day as "3:04 PM".
func FormatTimeLabel(t time.Time) string {
	return t.Local().Format("3:04 PM")
}

// FilterLedger keeps the transactions matching the category and the free-text query. The query
// is matched case-insensitively against the merchant and every tag.
func FilterLedger(txs []Transaction, filter LedgerFilter) []Transaction {
	category := strings.TrimSpace(filter.Category)
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	filtered := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if category != "" && category != AllCategories && tx.CategorySlug != category {
			continue
		}
		if query != "" && !matchesQuery(tx, query) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

func matchesQuery(tx Transaction, query string) bool {
	if strings.Contains(strings.ToLower(tx.Merchant), query) {
		return true
	}
	for _, tag := range tx.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// RecentTransactions returns at most n transactions, newest first.
func RecentTransactions(txs []Transaction, n int) []Transaction {
	sorted := SortNewestFirst(txs)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
