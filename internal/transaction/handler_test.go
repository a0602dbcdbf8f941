package transaction_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/category"
	categoryPostgres "github.com/frahmantamala/finflow/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	transactionDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/frahmantamala/finflow/internal/quickadd"
	"github.com/frahmantamala/finflow/internal/transaction"
	transactionPostgres "github.com/frahmantamala/finflow/internal/transaction/postgres"
	"github.com/frahmantamala/finflow/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Transaction Handler Integration", func() {
	var handler *transaction.Handler

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.FinanceCategory{}, &transactionDatamodel.FinanceTransaction{})).To(Succeed())

		categories := category.NewService(categoryPostgres.NewCategoryRepository(db), testLogger)
		resolver := quickadd.NewResolver(nil, quickadd.DefaultConfidenceThreshold, testLogger)
		service := transaction.NewService(
			transactionPostgres.NewTransactionRepository(db),
			categories,
			resolver,
			events.NewEventBus(testLogger),
			testLogger,
		)
		handler = transaction.NewHandler(&transport.BaseHandler{Logger: testLogger}, service)
	})

	request := func(method, target string, body []byte) *http.Request {
		req := httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req.WithContext(internal.ContextWithUserID(req.Context(), "u1"))
	}

	It("creates and lists transactions", func() {
		body := []byte(`{"merchant":"Netflix","category_slug":"entertainment","amount":15.99,"tags":["subscription"],"occurred_at":"2024-03-02T20:00:00Z"}`)
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, request(http.MethodPost, "/api/v1/transactions", body))
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created finance.Transaction
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Merchant).To(Equal("Netflix"))
		Expect(created.Amount.String()).To(Equal("15.99"))

		w = httptest.NewRecorder()
		handler.ListTransactions(w, request(http.MethodGet, "/api/v1/transactions?limit=5", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var page transaction.ListResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &page)).To(Succeed())
		Expect(page.Total).To(Equal(int64(1)))
		Expect(page.Limit).To(Equal(5))
		Expect(page.Transactions[0].ID).To(Equal(created.ID))
		Expect(page.Transactions[0].Tags).To(Equal([]string{"subscription"}))
	})

	It("rejects an unparseable timestamp", func() {
		body := []byte(`{"merchant":"Netflix","category_slug":"entertainment","amount":15.99,"occurred_at":"yesterday"}`)
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, request(http.MethodPost, "/api/v1/transactions", body))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns field errors for invalid input", func() {
		body := []byte(`{"merchant":"","category_slug":"food","amount":-3}`)
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, request(http.MethodPost, "/api/v1/transactions", body))
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var response struct {
			Error struct {
				Code    string                   `json:"code"`
				Details internal.ValidationErrors `json:"details"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &response)).To(Succeed())
		Expect(response.Error.Code).To(Equal(string(internal.ErrCodeValidationFailed)))
		Expect(response.Error.Details.Errors).To(HaveLen(2))
	})

	It("quick-adds from free text", func() {
		w := httptest.NewRecorder()
		handler.QuickAdd(w, request(http.MethodPost, "/api/v1/transactions/quick-add", []byte(`{"text":"dinner 45"}`)))
		Expect(w.Code).To(Equal(http.StatusCreated))

		var result transaction.QuickAddResult
		Expect(json.Unmarshal(w.Body.Bytes(), &result)).To(Succeed())
		Expect(result.Source).To(Equal(transaction.SourceHeuristic))
		Expect(result.Transaction.CategorySlug).To(Equal("food"))
		Expect(result.Transaction.Amount.String()).To(Equal("45"))
	})

	It("answers 422 for quick-add text without an amount", func() {
		w := httptest.NewRecorder()
		handler.QuickAdd(w, request(http.MethodPost, "/api/v1/transactions/quick-add", []byte(`{"text":"no numbers here"}`)))
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})
})
