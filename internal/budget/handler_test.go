package budget_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/budget"
	"github.com/frahmantamala/finflow/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Budget Handler", func() {
	var handler *budget.Handler

	BeforeEach(func() {
		service := budget.NewService(NewMockRepository(), nil, decimal.NewFromInt(3500), testLogger)
		handler = budget.NewHandler(&transport.BaseHandler{Logger: testLogger}, service)
	})

	withUser := func(req *http.Request) *http.Request {
		return req.WithContext(internal.ContextWithUserID(req.Context(), "u1"))
	}

	It("sets and reads back a month", func() {
		w := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"amount":"2750.25","month_key":"2024-05"}`)
		handler.SetBudget(w, withUser(httptest.NewRequest(http.MethodPut, "/api/v1/budget", body)))
		Expect(w.Code).To(Equal(http.StatusOK))

		w = httptest.NewRecorder()
		handler.GetBudget(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/budget?month=2024-05", nil)))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp budget.BudgetResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.IsSet).To(BeTrue())
		Expect(resp.Amount.String()).To(Equal("2750.25"))
	})

	It("rejects a bad month query", func() {
		w := httptest.NewRecorder()
		handler.GetBudget(w, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/budget?month=May", nil)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a malformed body", func() {
		w := httptest.NewRecorder()
		handler.SetBudget(w, withUser(httptest.NewRequest(http.MethodPut, "/api/v1/budget", bytes.NewBufferString(`{"amount":`))))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
