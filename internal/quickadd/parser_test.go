package quickadd_test

import (
	"testing"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/quickadd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestQuickAdd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "QuickAdd Suite")
}

var defaultCategories = []finance.Category{
	{Slug: "food", Label: "Food & Drink"},
	{Slug: "shopping", Label: "Shopping"},
	{Slug: "transport", Label: "Transport"},
	{Slug: "bills", Label: "Bills"},
	{Slug: "housing", Label: "Housing"},
	{Slug: "entertainment", Label: "Entertainment"},
	{Slug: "health", Label: "Health"},
	{Slug: "education", Label: "Education"},
	{Slug: "travel", Label: "Travel"},
}

var _ = Describe("Parse", func() {
	It("reads an explicit rupee amount and an at-merchant", func() {
		parsed, err := quickadd.Parse("Spent Rs. 250 at Grocery Store", defaultCategories)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Amount.Equal(decimal.NewFromInt(250))).To(BeTrue())
		Expect(parsed.Merchant).To(Equal("Grocery Store"))
		Expect(parsed.CategorySlug).To(Equal("shopping"))
		Expect(parsed.Tags).To(BeEmpty())
	})

	It("falls back to the first number and cleans the text into a merchant", func() {
		parsed, err := quickadd.Parse("dinner 45", defaultCategories)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Amount.Equal(decimal.NewFromInt(45))).To(BeTrue())
		Expect(parsed.Merchant).To(Equal("Dinner"))
		Expect(parsed.CategorySlug).To(Equal("food"))
	})

	It("prefers the rupee amount over earlier numbers", func() {
		parsed, err := quickadd.Parse("2 coffees rs 180.5 at starbucks", defaultCategories)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Amount.Equal(decimal.RequireFromString("180.5"))).To(BeTrue())
		Expect(parsed.Merchant).To(Equal("starbucks"))
		Expect(parsed.CategorySlug).To(Equal("food"))
	})

	It("keeps at most two decimals", func() {
		parsed, err := quickadd.Parse("Rs. 12.345 at Shop", defaultCategories)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Amount.String()).To(Equal("12.34"))
		Expect(parsed.Amount.Exponent()).To(BeNumerically(">=", -2))
	})

	DescribeTable("rejects text without a usable amount",
		func(text string) {
			_, err := quickadd.Parse(text, defaultCategories)
			Expect(err).To(MatchError(quickadd.ErrNoAmount))
		},
		Entry("no digits", "no numbers here"),
		Entry("zero rupees", "Rs. 0 at Shop"),
		Entry("zero with decimals", "0.00 lunch"),
		Entry("empty", ""),
	)

	DescribeTable("merchant rules",
		func(text, merchant string) {
			parsed, err := quickadd.Parse(text, defaultCategories)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed.Merchant).To(Equal(merchant))
		},
		Entry("at keeps the captured casing", "Rs 90 at the CORNER cafe", "the CORNER cafe"),
		Entry("for is normalized", "paid 1200 for monthly gym membership fee", "Monthly Gym Membership"),
		Entry("on is normalized", "300 on NETFLIX", "Netflix"),
		Entry("cleanup drops the spent word and punctuation", "Spent Rs. 75, uber!!", "Uber"),
		Entry("cleanup with nothing left", "Rs. 75", "Expense"),
		Entry("at wins over for", "Rs 40 for snacks at Cinema Hall", "Cinema Hall"),
	)

	Describe("category inference", func() {
		It("walks the keyword table in order", func() {
			Expect(quickadd.InferCategory("uber to the mall", defaultCategories)).To(Equal("transport"))
			Expect(quickadd.InferCategory("pizza and a movie", defaultCategories)).To(Equal("food"))
		})

		It("skips keywords of categories the user does not have", func() {
			cats := []finance.Category{{Slug: "bills"}, {Slug: "travel"}}
			Expect(quickadd.InferCategory("hotel dinner", cats)).To(Equal("travel"))
		})

		It("defaults to shopping, then the first category, then shopping", func() {
			Expect(quickadd.InferCategory("something", defaultCategories)).To(Equal("shopping"))
			Expect(quickadd.InferCategory("something", []finance.Category{{Slug: "misc"}})).To(Equal("misc"))
			Expect(quickadd.InferCategory("something", nil)).To(Equal("shopping"))
		})
	})

	Describe("NormalizeLabel", func() {
		It("title-cases up to three words", func() {
			Expect(quickadd.NormalizeLabel("  big  BAZAAR weekly haul ")).To(Equal("Big Bazaar Weekly"))
		})

		It("falls back for blank input", func() {
			Expect(quickadd.NormalizeLabel("   ")).To(Equal("Expense"))
		})
	})
})
