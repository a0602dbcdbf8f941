package cmd

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/finflow/internal"
	budgetDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/budget"
	categoryDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/category"
	transactionDatamodel "github.com/frahmantamala/finflow/internal/core/datamodel/transaction"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func sqlDriverName(cfg internal.DatabaseConfig) string {
	if cfg.Driver == "sqlite" {
		return "sqlite3"
	}
	return "pgx"
}

// initDB opens the connection pool shared by the repositories and the health check.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver := sqlDriverName(cfg)

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	if driver == "sqlite3" && strings.Contains(cfg.Source, ":memory:") {
		// every connection to an in-memory database is a separate database
		dbConn.SetMaxOpenConns(1)
	} else {
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func openGorm(cfg internal.DatabaseConfig, db *sqlx.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Driver == "sqlite" {
		dialector = sqlite.New(sqlite.Config{Conn: db.DB})
	} else {
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}

// autoMigrate creates the tables on SQLite, where the goose migrations (PostgreSQL SQL) do not apply.
func autoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&categoryDatamodel.FinanceCategory{},
		&transactionDatamodel.FinanceTransaction{},
		&budgetDatamodel.FinanceMonthlyBudget{},
	)
}

// openStores opens both handles and prepares SQLite schemas.
func openStores(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	db, err := initDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	gdb, err := openGorm(cfg, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	if cfg.Driver == "sqlite" {
		if err := autoMigrate(gdb); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return db, gdb, nil
}
