package rest

import (
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/report"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Health   *HealthHandler
	Category *category.Handler
	Expense  *expense.Handler
	Budget   *budget.Handler
	Report   *report.Handler
}

func RegisterAllRoutes(router chi.Router, h Handlers, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.WithLogger(logger))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Category != nil {
			r.Get("/categories", h.Category.GetCategories)
		}

		if h.Expense != nil {
			r.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.CreateExpense) // POST /expenses
				er.Get("/", h.Expense.ListExpenses)   // GET /expenses
			})
			r.Get("/summary", h.Expense.GetSummary)
		}

		if h.Report != nil {
			r.Get("/chart", h.Report.GetChart)
			r.Get("/chart.pdf", h.Report.GetChartPDF)
			r.Get("/export.xlsx", h.Report.ExportXLSX)
		}

		if h.Budget != nil {
			r.Get("/budgets", h.Budget.ListBudgets)
			r.Put("/budgets/{category}", h.Budget.SetBudget)
		}
	})
}
