package finance_test

import (
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ledger", func() {
	now := at(2024, time.March, 15, 12, 0)

	Describe("GroupByDateAt", func() {
		It("returns no groups for no transactions", func() {
			Expect(finance.GroupByDateAt(nil, now)).To(BeEmpty())
		})

		It("groups by local day, newest first, with relative labels", func() {
			txs := []finance.Transaction{
				tx("old", "food", "1", at(2024, time.March, 1, 8, 0)),
				tx("today-early", "food", "2", at(2024, time.March, 15, 0, 1)),
				tx("yesterday", "food", "3", at(2024, time.March, 14, 23, 59)),
				tx("today-late", "food", "4", at(2024, time.March, 15, 11, 0)),
			}

			groups := finance.GroupByDateAt(txs, now)
			Expect(groups).To(HaveLen(3))
			Expect(groups[0].Date).To(Equal("Today, Mar 15"))
			Expect(groups[1].Date).To(Equal("Yesterday, Mar 14"))
			Expect(groups[2].Date).To(Equal("Mar 1, 2024"))

			var ids []string
			for _, group := range groups {
				for _, item := range group.Items {
					ids = append(ids, item.ID)
				}
			}
			Expect(ids).To(Equal([]string{"today-late", "today-early", "yesterday", "old"}))
		})

		It("keeps input order for identical timestamps", func() {
			when := at(2024, time.March, 10, 9, 30)
			txs := []finance.Transaction{tx("a", "food", "1", when), tx("b", "food", "1", when)}
			groups := finance.GroupByDateAt(txs, now)
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].Items[0].ID).To(Equal("a"))
			Expect(groups[0].Items[1].ID).To(Equal("b"))
		})

		It("does not reorder the caller's slice", func() {
			txs := []finance.Transaction{
				tx("1", "food", "1", at(2024, time.March, 1, 8, 0)),
				tx("2", "food", "1", at(2024, time.March, 2, 8, 0)),
			}
			finance.GroupByDateAt(txs, now)
			Expect(txs[0].ID).To(Equal("1"))
		})
	})

	Describe("labels", func() {
		It("labels yesterday across a month boundary", func() {
			Expect(finance.FormatDateGroupLabel(at(2024, time.February, 29, 18, 0), at(2024, time.March, 1, 7, 0))).
				To(Equal("Yesterday, Feb 29"))
		})

		It("formats a 12-hour time of day", func() {
			Expect(finance.FormatTimeLabel(at(2024, time.March, 1, 15, 4))).To(Equal("3:04 PM"))
			Expect(finance.FormatTimeLabel(at(2024, time.March, 1, 0, 5))).To(Equal("12:05 AM"))
		})
	})

	Describe("FilterLedger", func() {
		txs := []finance.Transaction{
			{ID: "1", Merchant: "Starbucks", CategorySlug: "food", Amount: money("5"), Tags: []string{"coffee"}, OccurredAt: now},
			{ID: "2", Merchant: "Uber", CategorySlug: "transport", Amount: money("12"), Tags: []string{"Work"}, OccurredAt: now},
			{ID: "3", Merchant: "Amazon", CategorySlug: "shopping", Amount: money("40"), Tags: nil, OccurredAt: now},
		}

		ids := func(list []finance.Transaction) []string {
			out := []string{}
			for _, item := range list {
				out = append(out, item.ID)
			}
			return out
		}

		It("keeps everything for the all category and an empty query", func() {
			Expect(ids(finance.FilterLedger(txs, finance.LedgerFilter{Category: finance.AllCategories}))).
				To(Equal([]string{"1", "2", "3"}))
		})

		It("filters by category slug", func() {
			Expect(ids(finance.FilterLedger(txs, finance.LedgerFilter{Category: "transport"}))).To(Equal([]string{"2"}))
		})

		It("searches merchants and tags case-insensitively", func() {
			Expect(ids(finance.FilterLedger(txs, finance.LedgerFilter{Query: "  STAR "}))).To(Equal([]string{"1"}))
			Expect(ids(finance.FilterLedger(txs, finance.LedgerFilter{Query: "work"}))).To(Equal([]string{"2"}))
		})

		It("combines category and query", func() {
			Expect(ids(finance.FilterLedger(txs, finance.LedgerFilter{Category: "food", Query: "uber"}))).To(BeEmpty())
		})
	})

	Describe("RecentTransactions", func() {
		It("returns the newest n", func() {
			txs := []finance.Transaction{
				tx("1", "food", "1", at(2024, time.March, 1, 8, 0)),
				tx("2", "food", "1", at(2024, time.March, 3, 8, 0)),
				tx("3", "food", "1", at(2024, time.March, 2, 8, 0)),
			}
			recent := finance.RecentTransactions(txs, 2)
			Expect(recent).To(HaveLen(2))
			Expect(recent[0].ID).To(Equal("2"))
			Expect(recent[1].ID).To(Equal("3"))
		})
	})
})
