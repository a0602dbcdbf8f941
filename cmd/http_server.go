package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/finflow/api"
	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/ai/gemini"
	"github.com/frahmantamala/finflow/internal/assistant"
	"github.com/frahmantamala/finflow/internal/auth"
	"github.com/frahmantamala/finflow/internal/budget"
	"github.com/frahmantamala/finflow/internal/cache"
	"github.com/frahmantamala/finflow/internal/category"
	"github.com/frahmantamala/finflow/internal/core/events"
	"github.com/frahmantamala/finflow/internal/quickadd"
	"github.com/frahmantamala/finflow/internal/report"
	"github.com/frahmantamala/finflow/internal/transaction"
	"github.com/frahmantamala/finflow/internal/transport"
	"github.com/frahmantamala/finflow/internal/transport/middleware"
	"github.com/frahmantamala/finflow/internal/transport/openapi"
	"github.com/frahmantamala/finflow/internal/transport/rest"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

const cacheSweepInterval = time.Minute

type Dependencies struct {
	Config    *internal.Config
	DB        *sqlx.DB
	Cache     cache.Cache
	Bus       *events.EventBus
	Forwarder *events.Forwarder
	Gemini    *gemini.Client
	Router    *chi.Mux
	Logger    *slog.Logger
}

func startHTTPServer() {
	cfg, lg := bootstrap()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := initializeDependencies(ctx, cfg, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	cache.StartJanitor(ctx, deps.Cache, cacheSweepInterval, lg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		lg.Info("Starting HTTP server", "address", addr)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		lg.Info("Received signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	lg.Info("Server stopped")
}

func initializeDependencies(ctx context.Context, cfg *internal.Config, lg *slog.Logger) (*Dependencies, error) {
	db, gdb, err := openStores(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps := &Dependencies{Config: cfg, DB: db, Logger: lg, Bus: events.NewEventBus(lg)}

	deps.Cache, err = cache.New(cfg.Cache)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	sink, err := newBrokerSink(cfg.Events, lg)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	if sink != nil {
		deps.Forwarder = events.NewForwarder(sink, events.DefaultForwardTimeout, lg)
	}

	var extractor quickadd.Extractor
	var chatter assistant.Chatter
	if cfg.AI.Active() {
		deps.Gemini, err = gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.ModelName(),
			Timeout: cfg.AI.Timeout,
		}, lg)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to initialize AI client: %w", err)
		}
		extractor = deps.Gemini
		chatter = deps.Gemini
	} else {
		lg.Info("AI disabled, quick add uses the local parser and the assistant is off")
	}

	svc, err := newServices(cfg, gdb, deps.Cache, deps.Bus, extractor, lg)
	if err != nil {
		deps.Close()
		return nil, err
	}

	// the snapshot cache must be dropped before anything else reacts to a write
	svc.Snapshots.Subscribe(deps.Bus)
	if deps.Forwarder != nil {
		deps.Forwarder.Subscribe(deps.Bus)
	}

	guards := rest.Guards{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Authenticate: middleware.Authenticate(
			auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration),
			middleware.AuthOptions{
				AllowAnonymous: cfg.Security.AllowAnonymous,
				DefaultUserID:  cfg.Security.DefaultUserID,
			},
			lg,
		),
	}
	if cfg.Server.ValidateRequests {
		doc, err := openapi.Load(ctx, api.Spec)
		if err != nil {
			deps.Close()
			return nil, err
		}
		if guards.Validator, err = openapi.NewValidator(doc, lg); err != nil {
			deps.Close()
			return nil, err
		}
	}

	base := transport.NewBaseHandler(lg)
	deps.Router = chi.NewRouter()
	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health: rest.NewHealthHandler(map[string]rest.Checker{
			"database": db.PingContext,
			"cache":    deps.Cache.Ping,
		}),
		Category:    category.NewHandler(base, svc.Categories),
		Transaction: transaction.NewHandler(base, svc.Transactions),
		Budget:      budget.NewHandler(base, svc.Budgets),
		Report:      report.NewHandler(base, svc.Snapshots),
		Assistant:   assistant.NewHandler(base, assistant.NewService(svc.Snapshots, chatter, lg)),
	}, guards, lg)

	return deps, nil
}

// Close drains in-flight events before releasing connections.
func (d *Dependencies) Close() {
	if d.Bus != nil {
		d.Bus.Wait()
	}
	if d.Forwarder != nil {
		if err := d.Forwarder.Close(); err != nil {
			d.Logger.Error("Broker close error", "error", err)
		}
		d.Forwarder = nil
	}
	if d.Gemini != nil {
		if err := d.Gemini.Close(); err != nil {
			d.Logger.Error("AI client close error", "error", err)
		}
		d.Gemini = nil
	}
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Error("Cache close error", "error", err)
		}
		d.Cache = nil
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Error("Database close error", "error", err)
		}
		d.DB = nil
	}
}
