package validation_test

import (
	"testing"
	"time"

	errors "github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fieldErrors(appErr *errors.AppError) []errors.ValidationError {
	Expect(appErr).NotTo(BeNil())
	details, ok := appErr.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors
}

var _ = Describe("ValidationBuilder", func() {
	It("passes valid input", func() {
		v := validation.NewValidator()
		v.Field("merchant", "Starbucks").Required(errors.ErrCodeInvalidMerchant).MaxLength(100, errors.ErrCodeInvalidMerchant)
		v.Field("amount", decimal.RequireFromString("12.50")).Positive(errors.ErrCodeInvalidAmount).MaxDecimalPlaces(2, errors.ErrCodeInvalidAmount)
		v.Field("month", "2024-03").MonthKey()
		v.Field("tags", []string{"coffee"}).Tags(10, 30)
		Expect(v.Validate()).To(BeNil())
	})

	It("collects one error per failing field", func() {
		v := validation.NewValidator()
		v.Field("merchant", "   ").Required(errors.ErrCodeInvalidMerchant).MaxLength(3, errors.ErrCodeInvalidMerchant)
		v.Field("amount", decimal.Zero).Positive(errors.ErrCodeInvalidAmount)

		appErr := v.Validate()
		Expect(appErr.Code).To(Equal(errors.ErrCodeValidationFailed))
		errs := fieldErrors(appErr)
		Expect(errs).To(HaveLen(2))
		Expect(errs[0].Field).To(Equal("merchant"))
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidMerchant)))
		Expect(errs[1].Message).To(Equal("amount must be greater than 0"))
	})

	It("rejects more than two decimal places", func() {
		v := validation.NewValidator()
		v.Field("amount", decimal.RequireFromString("1.005")).MaxDecimalPlaces(2, errors.ErrCodeInvalidAmount)
		Expect(fieldErrors(v.Validate())[0].Code).To(Equal(string(errors.ErrCodeInvalidAmount)))
	})

	It("rejects future timestamps and bad month keys", func() {
		v := validation.NewValidator()
		future := time.Now().Add(time.Hour)
		v.Field("occurred_at", &future).NotFuture()
		v.Field("month", "2024-13").MonthKey()
		errs := fieldErrors(v.Validate())
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidDate)))
		Expect(errs[1].Code).To(Equal(string(errors.ErrCodeInvalidMonthKey)))
	})

	It("ignores a nil optional timestamp", func() {
		v := validation.NewValidator()
		var missing *time.Time
		v.Field("occurred_at", missing).NotFuture()
		Expect(v.Validate()).To(BeNil())
	})

	It("limits tags", func() {
		v := validation.NewValidator()
		v.Field("tags", []string{"ok", " "}).Tags(10, 30)
		Expect(fieldErrors(v.Validate())[0].Code).To(Equal(string(errors.ErrCodeInvalidTags)))
	})
})
