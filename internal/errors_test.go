package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/finflow/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("copies sentinels instead of mutating them", func() {
		cause := errors.New("upstream timeout")
		wrapped := internal.ErrAssistantFailed.WithCause(cause)

		Expect(wrapped).NotTo(BeIdenticalTo(internal.ErrAssistantFailed))
		Expect(internal.ErrAssistantFailed.Cause).To(BeNil())
		Expect(errors.Is(wrapped, cause)).To(BeTrue())
	})

	It("is found through wrapping", func() {
		err := fmt.Errorf("handler: %w", internal.ErrTransactionNotFound)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))

		_, ok = internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})

	It("renders the error envelope", func() {
		appErr := internal.NewValidationFieldError("amount", "amount must be greater than 0", internal.ErrCodeInvalidAmount)
		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadRequest))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]map[string]interface{}
		Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
		Expect(decoded["error"]).To(HaveKeyWithValue("code", "VALIDATION_FAILED"))
		Expect(decoded["error"]).To(HaveKey("details"))
		Expect(appErr.Error()).To(Equal("amount must be greater than 0"))
	})

	It("gives quick add failures their own status", func() {
		Expect(internal.ErrQuickAddUnparseable.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		Expect(internal.ErrAssistantUnavailable.StatusCode).To(Equal(http.StatusServiceUnavailable))
	})
})
