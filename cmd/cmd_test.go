package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/jsonstore"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
)

var _ = Describe("splitArgs", func() {
	DescribeTable("word splitting",
		func(line string, want []string) {
			got, err := splitArgs(line)

			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("plain words", "budget set Food 100", []string{"budget", "set", "Food", "100"}),
		Entry("double quotes", `add --description "Lunch with Sam"`, []string{"add", "--description", "Lunch with Sam"}),
		Entry("single quotes keep backslashes", `add -m 'a\b'`, []string{"add", "-m", `a\b`}),
		Entry("escaped space", `add -m Lunch\ out`, []string{"add", "-m", "Lunch out"}),
		Entry("empty quotes", `add -m ""`, []string{"add", "-m", ""}),
		Entry("extra whitespace", "  list \t ", []string{"list"}),
	)

	It("should fail on an unterminated quote", func() {
		_, err := splitArgs(`add -m "oops`)

		Expect(err).To(MatchError(errUnterminatedQuote))
	})
})

var _ = Describe("formatError", func() {
	It("should label input, load and save errors", func() {
		Expect(formatError(internal.NewValidationFieldError("date", "Date must be in YYYY-MM-DD format.", internal.ErrCodeInvalidDate))).
			To(Equal("Input Error: Date must be in YYYY-MM-DD format."))
		Expect(formatError(internal.ErrLoadFailed.WithCause(errors.New("bad json")))).
			To(Equal("Load Error: Failed to load data from JSON: bad json"))
		Expect(formatError(internal.ErrSaveFailed.WithCause(errors.New("read-only")))).
			To(Equal("Save Error: Failed to save data: read-only"))
		Expect(formatError(internal.ErrNoExpenses)).To(Equal("No expenses recorded yet"))
		Expect(formatError(errors.New("boom"))).To(Equal("Error: boom"))
	})
})

var _ = Describe("Commands", func() {
	var (
		dataFile string
		stdout   *bytes.Buffer
		stderr   *bytes.Buffer
	)

	BeforeEach(func() {
		dataFile = filepath.Join(GinkgoT().TempDir(), "expenses.json")
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		GinkgoT().Setenv("EXPENSE_STORAGE_DRIVER", "json")
	})

	run := func(input string, args ...string) error {
		app := newApplication(strings.NewReader(input), stdout, stderr)
		defer app.close()
		root := newRootCmd(app)
		root.SetArgs(append([]string{"--data-file", dataFile}, args...))
		return root.ExecuteContext(context.Background())
	}

	It("should add an expense and print the status line", func() {
		err := run("", "add", "--date", "2024-01-15", "--amount", "10", "--category", "Food", "--description", "Lunch")

		Expect(err).ToNot(HaveOccurred())
		Expect(stdout.String()).To(ContainSubstring("Added expense: Food - $10.00 on 2024-01-15"))

		table, err := jsonstore.Load(dataFile)
		Expect(err).ToNot(HaveOccurred())
		Expect(table).To(HaveLen(1))
		Expect(table[0].Description).To(Equal("Lunch"))
	})

	It("should reject invalid input without touching the file", func() {
		err := run("", "add", "--date", "2024-01-15", "--amount", "-5", "--category", "Food")

		Expect(internal.IsValidationError(err)).To(BeTrue())
		Expect(formatError(err)).To(Equal("Input Error: Amount must be a positive number."))
		Expect(dataFile).ToNot(BeAnExistingFile())
	})

	It("should require a date", func() {
		err := run("", "add", "--amount", "10")

		Expect(formatError(err)).To(Equal("Input Error: Please fill in all required fields (Date, Amount, Category)."))
		Expect(dataFile).ToNot(BeAnExistingFile())
	})

	It("should summarize recorded expenses", func() {
		Expect(run("", "seed")).To(Succeed())
		stdout.Reset()

		Expect(run("", "summary")).To(Succeed())

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		Expect(lines[0]).To(ContainSubstring("Category"))
		Expect(lines[1]).To(ContainSubstring("Rent"))
		Expect(lines[1]).To(ContainSubstring("$1200.00"))
	})

	It("should report an empty summary", func() {
		err := run("", "summary")

		Expect(err).To(HaveOccurred())
		Expect(formatError(err)).To(Equal("No expenses to summarize."))
	})

	It("should write the chart as a PDF", func() {
		Expect(run("", "seed")).To(Succeed())
		pdfPath := filepath.Join(filepath.Dir(dataFile), "out", "chart.pdf")

		Expect(run("", "chart", "--pdf", pdfPath)).To(Succeed())

		content, err := os.ReadFile(pdfPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(content)).To(HavePrefix("%PDF"))
	})

	It("should export csv", func() {
		Expect(run("", "seed")).To(Succeed())
		out := filepath.Join(filepath.Dir(dataFile), "expenses.csv")

		Expect(run("", "export", "--format", "csv", "--out", out)).To(Succeed())

		content, err := os.ReadFile(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.Count(string(content), "\n")).To(Equal(len(sampleExpenses) + 1))
	})

	It("should reject an unknown export format", func() {
		err := run("", "export", "--format", "pdf", "--out", "x.pdf")

		Expect(internal.IsValidationError(err)).To(BeTrue())
	})

	It("should continue with an empty table after a load error", func() {
		Expect(os.WriteFile(dataFile, []byte("{broken"), 0o644)).To(Succeed())

		Expect(run("", "list")).To(Succeed())

		Expect(stderr.String()).To(ContainSubstring("Load Error: "))
		Expect(stdout.String()).To(ContainSubstring("No expenses recorded yet."))
	})

	Describe("shell", func() {
		It("should keep budgets for the whole session", func() {
			input := strings.Join([]string{
				`add --date 2024-01-15 --amount 12.5 --category Food --description "Lunch with Sam"`,
				"budget set Food 100",
				"budget set Food 150",
				"budget list",
				"budget set Travel 10",
				"exit",
			}, "\n")

			Expect(run(input, "shell")).To(Succeed())

			out := stdout.String()
			Expect(out).To(ContainSubstring("Added expense: Food - $12.50 on 2024-01-15"))
			Expect(out).To(ContainSubstring("Budget for Food set to $150.00."))
			Expect(out).To(MatchRegexp(`Food\s+\$150\.00`))
			Expect(stderr.String()).To(ContainSubstring("Input Error: Category must be one of:"))

			table, err := jsonstore.Load(dataFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(table).To(HaveLen(1))
			Expect(table[0].Description).To(Equal("Lunch with Sam"))
		})

		It("should not let flags leak between lines", func() {
			input := strings.Join([]string{
				"add --date 2024-01-15 --amount 3 --category Rent --description first",
				"add --date 2024-01-16 --amount 4",
			}, "\n")

			Expect(run(input, "shell")).To(Succeed())

			table, err := jsonstore.Load(dataFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(table).To(HaveLen(2))
			Expect(table[1].Category).To(Equal("Food"))
			Expect(table[1].Description).To(BeEmpty())
		})
	})
})

var _ = Describe("initializeDependencies", func() {
	var cfg *internal.Config

	BeforeEach(func() {
		cfg = internal.DefaultConfig()
		cfg.Storage.Driver = internal.StorageDriverJSON
		cfg.Storage.DataFile = filepath.Join(GinkgoT().TempDir(), "expenses.json")
	})

	It("should print status lines inline when there is a terminal", func() {
		out := &bytes.Buffer{}
		deps, err := initializeDependencies(context.Background(), cfg, out)
		Expect(err).ToNot(HaveOccurred())
		defer deps.Close()

		_, err = deps.Budgets.Set(context.Background(), "Food", "100")

		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(Equal("Budget for Food set to $100.00.\n"))
	})

	It("should log status lines in the background and drain them on close", func() {
		logs := gbytes.NewBuffer()
		logger.InitWithWriter(logs, "info", "text")
		DeferCleanup(logger.Init, "error", "text")

		deps, err := initializeDependencies(context.Background(), cfg, nil)
		Expect(err).ToNot(HaveOccurred())

		_, err = deps.Expenses.AddExpense(context.Background(), expense.CreateExpenseDTO{
			Date: "2024-01-15", Amount: "7", Category: "Rent",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(deps.Close()).To(Succeed())

		Expect(logs).To(gbytes.Say(`Added expense: Rent - \$7.00 on 2024-01-15`))
	})
})
