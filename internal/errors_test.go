package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal"
)

var _ = Describe("AppError", func() {
	It("should match sentinels through wrapping", func() {
		err := fmt.Errorf("adding: %w", internal.ErrSaveFailed.WithCause(errors.New("disk full")))

		Expect(errors.Is(err, internal.ErrSaveFailed)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrLoadFailed)).To(BeFalse())
		Expect(internal.IsStorageError(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("disk full"))
	})

	It("should not mutate the sentinel when adding a cause", func() {
		_ = internal.ErrLoadFailed.WithCause(errors.New("x"))

		Expect(internal.ErrLoadFailed.Cause).To(BeNil())
	})

	It("should show the field message for validation errors", func() {
		err := internal.NewValidationFieldError("amount", "Amount must be a positive number.", internal.ErrCodeInvalidAmount)

		Expect(err.Error()).To(Equal("Amount must be a positive number."))
		Expect(err.Field()).To(Equal("amount"))
		Expect(internal.IsValidationError(err)).To(BeTrue())
	})

	It("should render the HTTP envelope", func() {
		status, body := internal.ErrNoExpenses.ToHTTPResponse()

		Expect(status).To(Equal(http.StatusNotFound))
		data, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(Equal(`{"error":{"type":"NOT_FOUND","code":"NO_EXPENSES","message":"No expenses recorded yet"}}`))
	})

	It("should treat plain errors as non-app errors", func() {
		_, ok := internal.IsAppError(errors.New("plain"))

		Expect(ok).To(BeFalse())
	})
})
