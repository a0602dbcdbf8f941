package category_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/frahmantamala/finflow/internal/category"
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI for testing
type MockRepository struct {
	categories  map[string]map[string]*categoryDatamodel.FinanceCategory
	createCalls int
	failError   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{categories: make(map[string]map[string]*categoryDatamodel.FinanceCategory)}
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*categoryDatamodel.FinanceCategory, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	var result []*categoryDatamodel.FinanceCategory
	for _, cat := range m.categories[userID] {
		result = append(result, cat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	return result, nil
}

func (m *MockRepository) GetBySlug(ctx context.Context, userID, slug string) (*categoryDatamodel.FinanceCategory, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	return m.categories[userID][slug], nil
}

func (m *MockRepository) CreateMany(ctx context.Context, rows []*categoryDatamodel.FinanceCategory) error {
	if m.failError != nil {
		return m.failError
	}
	m.createCalls++
	for _, row := range rows {
		if m.categories[row.UserID] == nil {
			m.categories[row.UserID] = make(map[string]*categoryDatamodel.FinanceCategory)
		}
		if _, exists := m.categories[row.UserID][row.Slug]; !exists {
			m.categories[row.UserID][row.Slug] = row
		}
	}
	return nil
}

func (m *MockRepository) DeleteByUser(ctx context.Context, userID string) error {
	if m.failError != nil {
		return m.failError
	}
	delete(m.categories, userID)
	return nil
}

var _ = Describe("Category Service", func() {
	var (
		repo    *MockRepository
		service *category.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		service = category.NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("EnsureDefaults", func() {
		It("bootstraps the default set for a new user", func() {
			categories, err := service.EnsureDefaults(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(len(category.Defaults())))
			Expect(categories[0].Label).To(Equal("Bills"))
		})

		It("does not insert again once categories exist", func() {
			_, err := service.EnsureDefaults(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.EnsureDefaults(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.createCalls).To(Equal(1))
		})

		It("propagates repository failures", func() {
			repo.failError = errors.New("database down")
			_, err := service.EnsureDefaults(ctx, "u1")
			Expect(err).To(MatchError(ContainSubstring("database down")))
		})
	})

	Describe("Exists", func() {
		It("reports known and unknown slugs", func() {
			Expect(service.CreateDefaults(ctx, "u1")).To(Succeed())

			ok, err := service.Exists(ctx, "u1", "food")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = service.Exists(ctx, "u1", "groceries")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("removes the user's categories", func() {
			Expect(service.CreateDefaults(ctx, "u1")).To(Succeed())
			Expect(service.Clear(ctx, "u1")).To(Succeed())

			categories, err := service.List(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(BeEmpty())
		})
	})

	It("ships the nine default categories with unique slugs", func() {
		seen := map[string]bool{}
		for _, c := range category.Defaults() {
			Expect(seen[c.Slug]).To(BeFalse())
			seen[c.Slug] = true
			Expect(c.Color).To(HavePrefix("#"))
		}
		Expect(seen).To(HaveLen(9))
	})
})
