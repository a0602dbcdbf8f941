package quickadd_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/frahmantamala/finflow/internal/quickadd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type mockExtractor struct {
	result   *quickadd.Extraction
	err      error
	calls    int
	lastText string
	lastRefs []quickadd.CategoryRef
}

func (m *mockExtractor) ExtractExpense(ctx context.Context, req quickadd.ExtractionRequest) (*quickadd.Extraction, error) {
	m.calls++
	m.lastText = req.Text
	m.lastRefs = req.Categories
	return m.result, m.err
}

var _ = Describe("Resolver", func() {
	var (
		extractor *mockExtractor
		resolver  *quickadd.Resolver
		ctx       context.Context
	)

	slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		ctx = context.Background()
		extractor = &mockExtractor{
			result: &quickadd.Extraction{
				Merchant:     "Grocery Store",
				Amount:       decimal.RequireFromString("250.456"),
				CategorySlug: "food",
				Confidence:   0.9,
				Reason:       "explicit amount",
			},
		}
		resolver = quickadd.NewResolver(extractor, quickadd.DefaultConfidenceThreshold, slogger)
	})

	It("accepts a confident extraction and rounds its amount", func() {
		res := resolver.Resolve(ctx, "  Spent Rs. 250 at Grocery Store  ", defaultCategories)
		Expect(res.Outcome).To(Equal(quickadd.OutcomeAIAccepted))
		Expect(res.Accepted()).To(BeTrue())
		Expect(res.Expense.Amount.String()).To(Equal("250.46"))
		Expect(res.Expense.Merchant).To(Equal("Grocery Store"))
		Expect(res.Expense.Tags).To(BeEmpty())
		Expect(extractor.calls).To(Equal(1))
		Expect(extractor.lastText).To(Equal("Spent Rs. 250 at Grocery Store"))
		Expect(extractor.lastRefs).To(HaveLen(len(defaultCategories)))
	})

	It("accepts a confidence exactly at the threshold", func() {
		extractor.result.Confidence = 0.6
		Expect(resolver.Resolve(ctx, "Rs 250", defaultCategories).Outcome).To(Equal(quickadd.OutcomeAIAccepted))
	})

	DescribeTable("falls back to the heuristics",
		func(mutate func(m *mockExtractor)) {
			mutate(extractor)
			res := resolver.Resolve(ctx, "Spent Rs. 99 at Corner Shop", defaultCategories)
			Expect(res.Outcome).To(Equal(quickadd.OutcomeHeuristicAccepted))
			Expect(res.Expense.Amount.Equal(decimal.NewFromInt(99))).To(BeTrue())
			Expect(res.Expense.Merchant).To(Equal("Corner Shop"))
			Expect(res.FallbackReason).NotTo(BeEmpty())
			Expect(extractor.calls).To(Equal(1))
		},
		Entry("when the call fails", func(m *mockExtractor) { m.err = errors.New("upstream 502") }),
		Entry("when confidence is low", func(m *mockExtractor) { m.result.Confidence = 0.59 }),
		Entry("when the slug is unknown", func(m *mockExtractor) { m.result.CategorySlug = "crypto" }),
		Entry("when the amount is zero", func(m *mockExtractor) { m.result.Amount = decimal.Zero }),
		Entry("when the amount rounds to zero", func(m *mockExtractor) { m.result.Amount = decimal.RequireFromString("0.004") }),
		Entry("when nothing comes back", func(m *mockExtractor) { m.result = nil }),
	)

	It("rejects when neither step finds an amount", func() {
		extractor.err = errors.New("timeout")
		res := resolver.Resolve(ctx, "no numbers here", defaultCategories)
		Expect(res.Outcome).To(Equal(quickadd.OutcomeRejected))
		Expect(res.Accepted()).To(BeFalse())
		Expect(res.Reason).To(Equal(quickadd.RejectionMessage))
	})

	It("goes straight to the heuristics without an extractor", func() {
		offline := quickadd.NewResolver(nil, 0, slogger)
		res := offline.Resolve(ctx, "lunch 120", defaultCategories)
		Expect(res.Outcome).To(Equal(quickadd.OutcomeHeuristicAccepted))
		Expect(res.Expense.CategorySlug).To(Equal("food"))
		Expect(res.FallbackReason).To(Equal("ai disabled"))
	})
})
