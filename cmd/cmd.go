package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "finflow",
	Short: "FinFlow personal finance service",
	Long:  `Tracks expenses, budgets and spending trends, with AI assisted quick entry.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// a missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

// setupRuntime applies process-wide settings: the logger, the local timezone that month keys
// and day groups are computed in, and plain-number JSON amounts.
func setupRuntime(cfg *internal.Config) (*slog.Logger, error) {
	lg := logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}
	time.Local = loc

	decimal.MarshalJSONWithoutQuotes = true
	return lg, nil
}

// bootstrap loads the configuration and prepares the runtime. Commands exit on failure.
func bootstrap() (*internal.Config, *slog.Logger) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	lg, err := setupRuntime(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid runtime settings: %v\n", err)
		os.Exit(1)
	}
	return cfg, lg
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(workerCmd)
}
