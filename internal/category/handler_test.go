package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/category"
	categoryPostgres "github.com/frahmantamala/finflow/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	"github.com/frahmantamala/finflow/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var handler *category.Handler

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.FinanceCategory{})).To(Succeed())

		service := category.NewService(categoryPostgres.NewCategoryRepository(db), slogger)
		handler = category.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	It("returns the bootstrapped categories for the caller", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		req = req.WithContext(internal.ContextWithUserID(req.Context(), "u1"))
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response category.CategoriesResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(9))

		slugs := make([]string, 0, len(response.Categories))
		for _, c := range response.Categories {
			slugs = append(slugs, c.Slug)
		}
		Expect(slugs).To(ContainElements("food", "shopping", "transport", "bills"))
	})

	It("rejects requests without a user", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		w := httptest.NewRecorder()

		handler.GetCategories(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
