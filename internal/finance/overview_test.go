package finance_test

import (
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("View models", func() {
	now := at(2024, time.March, 10, 12, 0)

	var snapshot finance.Snapshot

	BeforeEach(func() {
		snapshot = finance.Snapshot{
			Categories: append([]finance.Category{
				{Slug: "shopping", Label: "Shopping", Color: "#CEF62E", Icon: "shopping-bag"},
			}, testCategories...),
			Transactions: []finance.Transaction{
				tx("1", "food", "300", at(2024, time.March, 2, 9, 0)),
				tx("2", "transport", "200", at(2024, time.March, 5, 9, 0)),
				tx("3", "food", "100", at(2024, time.March, 9, 9, 0)),
				tx("4", "shopping", "50", at(2024, time.March, 10, 9, 0)),
				tx("5", "food", "1000", at(2024, time.February, 9, 9, 0)),
			},
			MonthlyBudget: finance.MonthlyBudget{MonthKey: "2024-03", Amount: money("1000")},
		}
	})

	Describe("TrendPercent", func() {
		It("is zero without a previous month", func() {
			Expect(finance.TrendPercent(decimal.Zero, money("100"))).To(BeZero())
		})

		It("is positive when spending dropped and negative when it grew", func() {
			Expect(finance.TrendPercent(money("200"), money("150"))).To(Equal(int64(25)))
			Expect(finance.TrendPercent(money("100"), money("150"))).To(Equal(int64(-50)))
		})

		It("rounds halves upwards", func() {
			Expect(finance.TrendPercent(money("200"), money("199"))).To(Equal(int64(1)))
			Expect(finance.TrendPercent(money("200"), money("201"))).To(Equal(int64(0)))
		})
	})

	Describe("BuildOverview", func() {
		It("summarises the current month against the budget", func() {
			overview := finance.BuildOverview(snapshot, now)
			Expect(overview.MonthKey).To(Equal("2024-03"))
			Expect(overview.Spent.Equal(money("650"))).To(BeTrue())
			Expect(overview.PreviousSpent.Equal(money("1000"))).To(BeTrue())
			Expect(overview.Remaining.Equal(money("350"))).To(BeTrue())
			Expect(overview.UsedPercent.Equal(money("65"))).To(BeTrue())
			Expect(overview.TrendPercent).To(Equal(int64(35)))
		})

		It("caps the used percentage and keeps a negative remainder", func() {
			snapshot.MonthlyBudget.Amount = money("500")
			overview := finance.BuildOverview(snapshot, now)
			Expect(overview.UsedPercent.Equal(money("100"))).To(BeTrue())
			Expect(overview.Remaining.Equal(money("-150"))).To(BeTrue())
		})

		It("reports zero usage without a budget", func() {
			snapshot.MonthlyBudget.Amount = decimal.Zero
			Expect(finance.BuildOverview(snapshot, now).UsedPercent.IsZero()).To(BeTrue())
		})

		It("builds highlight cards for the known preferred categories", func() {
			overview := finance.BuildOverview(snapshot, now)
			slugs := []string{}
			for _, card := range overview.Highlights {
				slugs = append(slugs, card.Slug)
			}
			Expect(slugs).To(Equal([]string{"food", "transport", "shopping", "bills"}))
			Expect(overview.Highlights[0].Spent.Equal(money("400"))).To(BeTrue())
			Expect(overview.Highlights[3].Spent.IsZero()).To(BeTrue())
		})

		It("lists the four newest transactions", func() {
			recent := finance.BuildOverview(snapshot, now).Recent
			Expect(recent).To(HaveLen(4))
			Expect(recent[0].ID).To(Equal("4"))
			Expect(recent[3].ID).To(Equal("1"))
		})
	})

	Describe("BuildReport", func() {
		It("derives savings and daily averages", func() {
			report := finance.BuildReport(snapshot, now, 6)
			Expect(report.Saved.Equal(money("350"))).To(BeTrue())
			Expect(report.AvgPerDay.Equal(money("65"))).To(BeTrue())
			Expect(report.SpentTrend).To(Equal(int64(35)))
			Expect(report.SavedTrend).To(Equal(int64(35)))
			Expect(report.Monthly).To(HaveLen(6))
			Expect(report.Weekly).To(HaveLen(7))
		})

		It("never reports negative savings", func() {
			snapshot.MonthlyBudget.Amount = money("100")
			report := finance.BuildReport(snapshot, now, 6)
			Expect(report.Saved.IsZero()).To(BeTrue())
			Expect(report.SavingsHistory[4].Amount.IsZero()).To(BeTrue())
		})

		It("shares the breakdown in whole percentages", func() {
			report := finance.BuildReport(snapshot, now, 6)
			Expect(report.BreakdownTotal.Equal(money("650"))).To(BeTrue())
			Expect(report.Breakdown[0].Slug).To(Equal("food"))
			Expect(report.Breakdown[0].Percent).To(Equal(int64(62)))
		})

		It("phrases the trend insight by direction", func() {
			report := finance.BuildReport(snapshot, now, 6)
			Expect(report.Insights[0].Title).To(Equal("You spent 35% less than last month"))
			Expect(report.Insights[1].Title).To(Equal("You have Rs. 350 left in budget"))
		})
	})
})
