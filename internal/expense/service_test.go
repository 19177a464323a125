package expense_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Mock repository for testing
type mockExpenseRepository struct {
	table       expense.Table
	appendError error
	allError    error
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{table: expense.Table{}}
}

func (m *mockExpenseRepository) Append(_ context.Context, rec expense.Record) error {
	// the record stays in memory even when the save fails
	m.table = append(m.table, rec)
	return m.appendError
}

func (m *mockExpenseRepository) All(_ context.Context) (expense.Table, error) {
	if m.allError != nil {
		return nil, m.allError
	}
	return m.table.Clone(), nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func validDTO() expense.CreateExpenseDTO {
	return expense.CreateExpenseDTO{
		Date:        "2024-01-15",
		Amount:      "10.50",
		Category:    "Food",
		Description: "Lunch",
	}
}

var _ = Describe("ExpenseService", func() {
	var (
		repo      *mockExpenseRepository
		publisher *recordingPublisher
		service   *expense.Service
		logger    *slog.Logger
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockExpenseRepository()
		publisher = &recordingPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(repo, publisher, logger)
		ctx = context.Background()
	})

	Describe("AddExpense", func() {
		Context("when the input is valid", func() {
			It("should grow the table by exactly one record", func() {
				rec, err := service.AddExpense(ctx, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(rec).ToNot(BeNil())
				Expect(repo.table).To(HaveLen(1))
			})

			It("should store the submitted values", func() {
				_, err := service.AddExpense(ctx, validDTO())
				Expect(err).ToNot(HaveOccurred())

				stored := repo.table[0]
				Expect(stored.Date).To(Equal("2024-01-15"))
				Expect(stored.Amount.Equal(decimal.RequireFromString("10.5"))).To(BeTrue())
				Expect(stored.Category).To(Equal("Food"))
				Expect(stored.Description).To(Equal("Lunch"))
			})

			It("should accept an empty description", func() {
				dto := validDTO()
				dto.Description = "   "

				rec, err := service.AddExpense(ctx, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(rec.Description).To(BeEmpty())
			})

			It("should publish an expense.added event with the status line", func() {
				_, err := service.AddExpense(ctx, validDTO())
				Expect(err).ToNot(HaveOccurred())

				Expect(publisher.published).To(HaveLen(1))
				event := publisher.published[0]
				Expect(event.EventType()).To(Equal(events.EventTypeExpenseAdded))
				Expect(events.StatusMessage(event)).To(Equal("Added expense: Food - $10.50 on 2024-01-15"))
			})

			It("should trim surrounding whitespace", func() {
				dto := expense.CreateExpenseDTO{Date: " 2024-02-01 ", Amount: " 3 ", Category: " Rent ", Description: " March "}

				rec, err := service.AddExpense(ctx, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(rec.Date).To(Equal("2024-02-01"))
				Expect(rec.Category).To(Equal("Rent"))
				Expect(rec.Description).To(Equal("March"))
			})
		})

		Context("when input is invalid", func() {
			DescribeTable("should reject without mutating the table",
				func(dto expense.CreateExpenseDTO, code internal.ErrorCode, message string) {
					rec, err := service.AddExpense(ctx, dto)

					Expect(rec).To(BeNil())
					Expect(err).To(HaveOccurred())
					Expect(internal.IsValidationError(err)).To(BeTrue())

					appErr, ok := internal.IsAppError(err)
					Expect(ok).To(BeTrue())
					Expect(appErr.Code).To(Equal(code))
					Expect(appErr.Error()).To(Equal(message))

					Expect(repo.table).To(BeEmpty())
					Expect(publisher.published).To(BeEmpty())
				},
				Entry("missing date",
					expense.CreateExpenseDTO{Amount: "10", Category: "Food"},
					internal.ErrCodeRequiredField, expense.MsgRequiredFields),
				Entry("missing amount",
					expense.CreateExpenseDTO{Date: "2024-01-15", Category: "Food"},
					internal.ErrCodeRequiredField, expense.MsgRequiredFields),
				Entry("blank category",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "10", Category: "  "},
					internal.ErrCodeRequiredField, expense.MsgRequiredFields),
				Entry("bad date shape",
					expense.CreateExpenseDTO{Date: "2024-1-15", Amount: "10", Category: "Food"},
					internal.ErrCodeInvalidDate, "Date must be in YYYY-MM-DD format."),
				Entry("negative amount",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "-5", Category: "Food"},
					internal.ErrCodeInvalidAmount, "Amount must be a positive number."),
				Entry("zero amount",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "0", Category: "Food"},
					internal.ErrCodeInvalidAmount, "Amount must be a positive number."),
				Entry("non-numeric amount",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "abc", Category: "Food"},
					internal.ErrCodeInvalidAmount, "Amount must be a positive number."),
				Entry("amount beyond float64",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "1e3000000", Category: "Food"},
					internal.ErrCodeInvalidAmount, "Amount must be a positive number."),
				Entry("amount below the smallest float64",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "1e-3000000", Category: "Food"},
					internal.ErrCodeInvalidAmount, "Amount must be a positive number."),
				Entry("unknown category",
					expense.CreateExpenseDTO{Date: "2024-01-15", Amount: "10", Category: "Travel"},
					internal.ErrCodeInvalidCategory,
					"Category must be one of: Food, Transportation, Entertainment, Utilities, Rent, Others"),
			)

			It("should report the date before the amount", func() {
				_, err := service.AddExpense(ctx, expense.CreateExpenseDTO{Date: "bad-date", Amount: "abc", Category: "Food"})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Field()).To(Equal("date"))
			})

			It("should accept a date that is shaped right but not a real day", func() {
				_, err := service.AddExpense(ctx, expense.CreateExpenseDTO{Date: "9999-99-99", Amount: "1", Category: "Food"})

				Expect(err).ToNot(HaveOccurred())
			})
		})

		Context("when saving fails", func() {
			It("should return the record together with the storage error", func() {
				repo.appendError = internal.ErrSaveFailed.WithCause(errors.New("disk full"))

				rec, err := service.AddExpense(ctx, validDTO())

				Expect(rec).ToNot(BeNil())
				Expect(internal.IsStorageError(err)).To(BeTrue())
				Expect(errors.Is(err, internal.ErrSaveFailed)).To(BeTrue())
				Expect(repo.table).To(HaveLen(1))
			})

			It("should still publish the event marked as not persisted", func() {
				repo.appendError = internal.ErrSaveFailed.WithCause(errors.New("disk full"))

				_, _ = service.AddExpense(ctx, validDTO())

				Expect(publisher.published).To(HaveLen(1))
				added, ok := publisher.published[0].(*events.ExpenseAddedEvent)
				Expect(ok).To(BeTrue())
				Expect(added.Persisted).To(BeFalse())
			})

			It("should drop the record on a non-storage failure", func() {
				repo.appendError = errors.New("boom")

				rec, err := service.AddExpense(ctx, validDTO())

				Expect(rec).To(BeNil())
				Expect(err).To(MatchError("boom"))
				Expect(publisher.published).To(BeEmpty())
			})
		})

		It("should work without a publisher", func() {
			service = expense.NewService(repo, nil, logger)

			_, err := service.AddExpense(ctx, validDTO())

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("ListExpenses", func() {
		It("should return the records in entry order", func() {
			for _, c := range []string{"Rent", "Food", "Others"} {
				dto := validDTO()
				dto.Category = c
				_, err := service.AddExpense(ctx, dto)
				Expect(err).ToNot(HaveOccurred())
			}

			table, err := service.ListExpenses(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(table).To(HaveLen(3))
			Expect(table[0].Category).To(Equal("Rent"))
			Expect(table[2].Category).To(Equal("Others"))
		})

		It("should propagate repository errors", func() {
			repo.allError = internal.ErrLoadFailed

			_, err := service.ListExpenses(ctx)

			Expect(errors.Is(err, internal.ErrLoadFailed)).To(BeTrue())
		})
	})

	Describe("Summary", func() {
		It("should aggregate the stored records", func() {
			for _, dto := range []expense.CreateExpenseDTO{
				{Date: "2024-01-01", Amount: "10", Category: "Food"},
				{Date: "2024-01-02", Amount: "20", Category: "Food"},
				{Date: "2024-01-03", Amount: "5", Category: "Rent"},
			} {
				_, err := service.AddExpense(ctx, dto)
				Expect(err).ToNot(HaveOccurred())
			}

			totals, err := service.Summary(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(totals).To(HaveLen(2))
			Expect(totals[0].Category).To(Equal("Food"))
			Expect(totals[0].Total.String()).To(Equal("30"))
			Expect(totals[1].Category).To(Equal("Rent"))
			Expect(totals[1].Total.String()).To(Equal("5"))
		})

		It("should be empty for an empty table", func() {
			totals, err := service.Summary(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(totals).To(BeEmpty())
		})
	})
})
