package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/finflow/internal/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	seedUserID string
	clearData  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed a user with the default categories, the current budget and a set of demo transactions.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, lg := bootstrap()

		db, gdb, err := openStores(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		// seeding writes straight to storage, nothing listens for events here
		svc, err := newServices(cfg, gdb, nil, nil, nil, lg)
		if err != nil {
			log.Fatalf("failed to init services: %v", err)
		}

		userID := seedUserID
		if userID == "" {
			userID = cfg.Security.DefaultUserID
		}

		ctx := context.Background()
		if clearData {
			if err := svc.Transactions.Clear(ctx, userID); err != nil {
				log.Fatalf("failed to clear transactions: %v", err)
			}
			if err := svc.Budgets.Clear(ctx, userID); err != nil {
				log.Fatalf("failed to clear budgets: %v", err)
			}
			if err := svc.Categories.Clear(ctx, userID); err != nil {
				log.Fatalf("failed to clear categories: %v", err)
			}
			fmt.Println("Cleared existing data for", userID)
		}

		categories, err := svc.Categories.EnsureDefaults(ctx, userID)
		if err != nil {
			log.Fatalf("failed to seed categories: %v", err)
		}
		fmt.Printf("Seeded %d categories\n", len(categories))

		monthBudget, err := svc.Budgets.EnsureCurrent(ctx, userID)
		if err != nil {
			log.Fatalf("failed to seed budget: %v", err)
		}
		fmt.Printf("Budget for %s: %s\n", monthBudget.MonthKey, monthBudget.Amount.StringFixed(2))

		txs := demoTransactions(time.Now())
		if err := svc.Transactions.Import(ctx, userID, txs); err != nil {
			log.Fatalf("failed to seed transactions: %v", err)
		}
		fmt.Printf("Seeded %d transactions\n", len(txs))
	},
}

type demoEntry struct {
	merchant string
	slug     string
	amount   string
	hoursAgo int
	tags     []string
}

var demoEntries = []demoEntry{
	{"Whole Foods Market", "food", "67.43", 2, []string{"groceries"}},
	{"Shell Gas Station", "transport", "45.00", 26, []string{"fuel"}},
	{"Netflix", "entertainment", "15.99", 50, []string{"subscription"}},
	{"Chipotle", "food", "14.85", 74, []string{"lunch"}},
	{"Electric Company", "bills", "128.50", 98, []string{"utilities"}},
	{"Target", "shopping", "89.23", 122, nil},
	{"Rent Payment", "housing", "1850.00", 146, []string{"rent"}},
	{"Coursera", "education", "39.00", 170, []string{"subscription"}},
	{"Starbucks", "food", "6.75", 194, []string{"coffee"}},
	{"Amazon", "shopping", "34.99", 218, nil},
}

func demoTransactions(now time.Time) []finance.Transaction {
	txs := make([]finance.Transaction, 0, len(demoEntries))
	for _, e := range demoEntries {
		tags := e.tags
		if tags == nil {
			tags = []string{}
		}
		txs = append(txs, finance.Transaction{
			ID:           uuid.NewString(),
			Merchant:     e.merchant,
			CategorySlug: e.slug,
			Amount:       decimal.RequireFromString(e.amount),
			Tags:         tags,
			OccurredAt:   now.Add(-time.Duration(e.hoursAgo) * time.Hour),
		})
	}
	return txs
}

func init() {
	seedCmd.Flags().StringVar(&seedUserID, "user", "", "user id to seed (defaults to security.default_user_id)")
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
