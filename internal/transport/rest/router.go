package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finflow/api"
	"github.com/frahmantamala/finflow/internal/assistant"
	"github.com/frahmantamala/finflow/internal/budget"
	"github.com/frahmantamala/finflow/internal/category"
	"github.com/frahmantamala/finflow/internal/report"
	"github.com/frahmantamala/finflow/internal/transaction"
	"github.com/frahmantamala/finflow/internal/transport/middleware"
	"github.com/frahmantamala/finflow/internal/transport/openapi"
	"github.com/frahmantamala/finflow/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Health      *HealthHandler
	Category    *category.Handler
	Transaction *transaction.Handler
	Budget      *budget.Handler
	Report      *report.Handler
	Assistant   *assistant.Handler
}

// Guards wrap the API. Validator may be nil to skip contract checks.
type Guards struct {
	AllowedOrigins string
	Authenticate   func(http.Handler) http.Handler
	Validator      *openapi.Validator
}

func RegisterAllRoutes(router *chi.Mux, handlers Handlers, guards Guards, logger *slog.Logger) {
	router.Use(middleware.CORS(guards.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if guards.Validator != nil {
			r.Use(guards.Validator.Middleware)
		}

		if handlers.Health != nil {
			r.Get("/health", handlers.Health.healthCheckHandler)
			r.Get("/ping", handlers.Health.pingHandler)
		}

		r.Group(func(pr chi.Router) {
			if guards.Authenticate != nil {
				pr.Use(guards.Authenticate)
			}

			if handlers.Category != nil {
				pr.Get("/categories", handlers.Category.GetCategories)
			}

			if handlers.Transaction != nil {
				pr.Route("/transactions", func(tr chi.Router) {
					tr.Get("/", handlers.Transaction.ListTransactions)
					tr.Post("/", handlers.Transaction.CreateTransaction)
					tr.Post("/quick-add", handlers.Transaction.QuickAdd)
				})
			}

			if handlers.Budget != nil {
				pr.Get("/budget", handlers.Budget.GetBudget)
				pr.Put("/budget", handlers.Budget.SetBudget)
			}

			if handlers.Report != nil {
				pr.Get("/overview", handlers.Report.GetOverview)
				pr.Get("/reports", handlers.Report.GetReports)
				pr.Get("/ledger", handlers.Report.GetLedger)
				pr.Get("/ledger/export", handlers.Report.ExportLedger)
			}

			if handlers.Assistant != nil {
				pr.Post("/assistant/chat", handlers.Assistant.Chat)
			}
		})
	})
}
