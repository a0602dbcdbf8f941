package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const recentLimit = 4

var (
	hundred = decimal.NewFromInt(100)

	highlightSlugs = []string{"food", "transport", "shopping", "bills"}
)

type Highlight struct {
	Slug  string          `json:"slug"`
	Label string          `json:"label"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Spent decimal.Decimal `json:"spent"`
}

// Overview is the home screen summary of the current month.
type Overview struct {
	MonthKey      string          `json:"month_key"`
	Budget        decimal.Decimal `json:"budget"`
	Spent         decimal.Decimal `json:"spent"`
	PreviousSpent decimal.Decimal `json:"previous_spent"`
	Remaining     decimal.Decimal `json:"remaining"`
	UsedPercent   decimal.Decimal `json:"used_percent"`
	TrendPercent  int64           `json:"trend_percent"`
	Highlights    []Highlight     `json:"highlights"`
	Recent        []Transaction   `json:"recent"`
}

type CategoryShare struct {
	CategorySpend
	Percent int64 `json:"percent"`
}

type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Report struct {
	MonthKey       string          `json:"month_key"`
	Spent          decimal.Decimal `json:"spent"`
	PreviousSpent  decimal.Decimal `json:"previous_spent"`
	Saved          decimal.Decimal `json:"saved"`
	AvgPerDay      decimal.Decimal `json:"avg_per_day"`
	SpentTrend     int64           `json:"spent_trend"`
	SavedTrend     int64           `json:"saved_trend"`
	Monthly        []MonthPoint    `json:"monthly"`
	Weekly         []DayPoint      `json:"weekly"`
	Breakdown      []CategoryShare `json:"breakdown"`
	BreakdownTotal decimal.Decimal `json:"breakdown_total"`
	SavingsHistory []MonthPoint    `json:"savings_history"`
	Insights       []Insight       `json:"insights"`
}

// roundHalfUp rounds to the nearest integer with halves going towards positive infinity.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(decimal.NewFromFloat(0.5)).Floor().IntPart()
}

// TrendPercent is the relative drop of current against previous, as a whole percentage. A positive
// value means less was spent than before. It is 0 when there is nothing to compare with.
func TrendPercent(previous, current decimal.Decimal) int64 {
	if !previous.IsPositive() {
		return 0
	}
	return roundHalfUp(previous.Sub(current).Div(previous).Mul(hundred))
}

func BuildOverview(s Snapshot, now time.Time) Overview {
	monthKey := MonthKey(now)
	spent := MonthlySpent(s.Transactions, monthKey)
	previous := MonthlySpent(s.Transactions, PreviousMonthKey(now))
	budget := s.MonthlyBudget.Amount

	used := decimal.Zero
	if budget.IsPositive() {
		used = decimal.Min(spent.Div(budget).Mul(hundred), hundred).Round(2)
	}

	return Overview{
		MonthKey:      monthKey,
		Budget:        budget,
		Spent:         spent,
		PreviousSpent: previous,
		Remaining:     budget.Sub(spent),
		UsedPercent:   used,
		TrendPercent:  TrendPercent(previous, spent),
		Highlights:    highlights(s, monthKey),
		Recent:        RecentTransactions(s.Transactions, recentLimit),
	}
}

func highlights(s Snapshot, monthKey string) []Highlight {
	spendBySlug := make(map[string]decimal.Decimal)
	for _, item := range CategoryBreakdown(s.Categories, s.Transactions, monthKey) {
		spendBySlug[item.Slug] = item.Value
	}

	cards := make([]Highlight, 0, len(highlightSlugs))
	for _, slug := range highlightSlugs {
		cat, ok := findCategory(s.Categories, slug)
		if !ok {
			continue
		}
		cards = append(cards, Highlight{
			Slug:  cat.Slug,
			Label: cat.Label,
			Icon:  cat.Icon,
			Color: cat.Color,
			Spent: spendBySlug[slug],
		})
	}
	return cards
}

func findCategory(cats []Category, slug string) (Category, bool) {
	for _, cat := range cats {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return Category{}, false
}

// BuildReport assembles the reports screen for the month of now.
func BuildReport(s Snapshot, now time.Time, months int) Report {
	monthKey := MonthKey(now)
	spent := MonthlySpent(s.Transactions, monthKey)
	previous := MonthlySpent(s.Transactions, PreviousMonthKey(now))
	budget := s.MonthlyBudget.Amount

	saved := decimal.Max(budget.Sub(spent), decimal.Zero)
	day := now.Local().Day()
	if day < 1 {
		day = 1
	}

	var savedTrend int64
	if budget.IsPositive() {
		savedTrend = roundHalfUp(saved.Div(budget).Mul(hundred))
	}

	monthly := MonthSeries(s.Transactions, months, now)
	breakdown := CategoryBreakdown(s.Categories, s.Transactions, monthKey)
	total := decimal.Zero
	for _, item := range breakdown {
		total = total.Add(item.Value)
	}

	shares := make([]CategoryShare, 0, len(breakdown))
	for _, item := range breakdown {
		var pct int64
		if total.IsPositive() {
			pct = roundHalfUp(item.Value.Div(total).Mul(hundred))
		}
		shares = append(shares, CategoryShare{CategorySpend: item, Percent: pct})
	}

	history := make([]MonthPoint, 0, len(monthly))
	for _, point := range monthly {
		history = append(history, MonthPoint{
			MonthKey: point.MonthKey,
			Month:    point.Month,
			Amount:   decimal.Max(budget.Sub(point.Amount), decimal.Zero),
		})
	}

	spentTrend := TrendPercent(previous, spent)

	return Report{
		MonthKey:       monthKey,
		Spent:          spent,
		PreviousSpent:  previous,
		Saved:          saved,
		AvgPerDay:      spent.Div(decimal.NewFromInt(int64(day))).Round(2),
		SpentTrend:     spentTrend,
		SavedTrend:     savedTrend,
		Monthly:        monthly,
		Weekly:         WeeklySeries(s.Transactions, now),
		Breakdown:      shares,
		BreakdownTotal: total,
		SavingsHistory: history,
		Insights:       reportInsights(spentTrend, saved),
	}
}

func reportInsights(spentTrend int64, saved decimal.Decimal) []Insight {
	trend := Insight{
		Title:       fmt.Sprintf("You spent %d%% less than last month", spentTrend),
		Description: "Current pace is improving.",
	}
	if spentTrend < 0 {
		trend = Insight{
			Title:       fmt.Sprintf("You spent %d%% more than last month", -spentTrend),
			Description: "Review high-cost categories to rebalance.",
		}
	}

	return []Insight{
		trend,
		{
			Title:       fmt.Sprintf("You have Rs. %s left in budget", saved.Round(0).String()),
			Description: "Track this against upcoming recurring bills.",
		},
	}
}
