package cmd

import (
	"log/slog"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/budget"
	budgetPostgres "github.com/frahmantamala/finflow/internal/budget/postgres"
	"github.com/frahmantamala/finflow/internal/cache"
	"github.com/frahmantamala/finflow/internal/category"
	categoryPostgres "github.com/frahmantamala/finflow/internal/category/postgres"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/quickadd"
	"github.com/frahmantamala/finflow/internal/snapshot"
	"github.com/frahmantamala/finflow/internal/transaction"
	transactionPostgres "github.com/frahmantamala/finflow/internal/transaction/postgres"
	"gorm.io/gorm"
)

type services struct {
	Categories   *category.Service
	Transactions *transaction.Service
	Budgets      *budget.Service
	Snapshots    *snapshot.Service
}

// newServices wires the domain services over gorm. extractor may be nil when AI is off.
func newServices(cfg *internal.Config, gdb *gorm.DB, c cache.Cache, publisher events.Publisher, extractor quickadd.Extractor, lg *slog.Logger) (*services, error) {
	defaultBudget, err := cfg.App.MonthlyBudget()
	if err != nil {
		return nil, err
	}

	categories := category.NewService(categoryPostgres.NewCategoryRepository(gdb), lg)
	resolver := quickadd.NewResolver(extractor, cfg.AI.ConfidenceThreshold, lg)
	transactions := transaction.NewService(
		transactionPostgres.NewTransactionRepository(gdb),
		categories,
		resolver,
		publisher,
		lg,
	)
	budgets := budget.NewService(budgetPostgres.NewBudgetRepository(gdb), publisher, defaultBudget, lg)

	return &services{
		Categories:   categories,
		Transactions: transactions,
		Budgets:      budgets,
		Snapshots:    snapshot.NewService(categories, transactions, budgets, c, lg),
	}, nil
}
