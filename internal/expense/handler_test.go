package expense_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/transport"
)

var _ = Describe("ExpenseHandler", func() {
	var (
		repo     *mockExpenseRepository
		handler  *expense.Handler
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockExpenseRepository()
		service := expense.NewService(repo, nil, logger)
		handler = expense.NewHandler(transport.NewBaseHandler(logger), service)
		recorder = httptest.NewRecorder()
	})

	post := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	decode := func() map[string]interface{} {
		var response map[string]interface{}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
		return response
	}

	Context("CreateExpense", func() {
		It("should create an expense from a numeric amount", func() {
			handler.CreateExpense(recorder, post(`{"date":"2024-01-15","amount":10.5,"category":"Food","description":"Lunch"}`))

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			response := decode()
			Expect(response["Date"]).To(Equal("2024-01-15"))
			Expect(response["Amount"]).To(BeNumerically("==", 10.5))
			Expect(repo.table).To(HaveLen(1))
		})

		It("should accept the amount as a string", func() {
			handler.CreateExpense(recorder, post(`{"date":"2024-01-15","amount":"12","category":"Rent"}`))

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(repo.table[0].Amount.String()).To(Equal("12"))
		})

		It("should return bad request for malformed JSON", func() {
			handler.CreateExpense(recorder, post(`invalid json`))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(repo.table).To(BeEmpty())
		})

		It("should return the validation error envelope", func() {
			handler.CreateExpense(recorder, post(`{"date":"2024-01-15","amount":"-1","category":"Food"}`))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			errBody, ok := decode()["error"].(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(errBody["type"]).To(Equal(string(internal.ErrorTypeValidation)))
			Expect(errBody["code"]).To(Equal(string(internal.ErrCodeInvalidAmount)))
			Expect(errBody["message"]).To(Equal("Amount must be a positive number."))
		})

		It("should return a server error when saving fails", func() {
			repo.appendError = internal.ErrSaveFailed.WithCause(errors.New("read-only file system"))

			handler.CreateExpense(recorder, post(`{"date":"2024-01-15","amount":"3","category":"Food"}`))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			errBody := decode()["error"].(map[string]interface{})
			Expect(errBody["code"]).To(Equal(string(internal.ErrCodeSaveFailed)))
		})
	})

	Context("ListExpenses", func() {
		It("should return an empty list rather than null", func() {
			handler.ListExpenses(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"expenses":[]`))
			Expect(decode()["count"]).To(BeNumerically("==", 0))
		})

		It("should list stored records", func() {
			_, err := handler.Service.AddExpense(context.Background(), validDTO())
			Expect(err).ToNot(HaveOccurred())

			handler.ListExpenses(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil))

			Expect(decode()["count"]).To(BeNumerically("==", 1))
		})
	})

	Context("GetSummary", func() {
		It("should return not found when nothing is recorded", func() {
			handler.GetSummary(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should return the category totals", func() {
			_, err := handler.Service.AddExpense(context.Background(), validDTO())
			Expect(err).ToNot(HaveOccurred())

			handler.GetSummary(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`{"category":"Food","total":10.5}`))
		})
	})
})
