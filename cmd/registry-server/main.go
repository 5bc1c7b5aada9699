package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/config"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/procedure"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/workflow"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/db"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/middleware"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/session"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/telemetry"
)

const (
	serviceName    = "registry-server"
	serviceVersion = "0.1.0"

	sweepInterval = time.Minute
)

func main() {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Surgical procedure registry server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the registry server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the reference catalog tables",
	}

	// catalog migrate
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply pending reference table migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				count, err := db.NewMigrator(pool, catalog.Migrations()).Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	})

	// catalog status
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show reference table migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				statuses, err := db.NewMigrator(pool, catalog.Migrations()).Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				printStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	})

	// catalog import
	cmd.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Copy the built-in reference data into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				cat := catalog.Default()
				if err := catalog.NewPGLoader(pool).Import(ctx, cat); err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				printStats(cmd.OutOrStdout(), cat.Stats())
				return nil
			})
		},
	})

	// catalog stats
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Count the entries of each reference table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			loader, closeFn, err := catalogLoader(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			cat, err := loader.Load(ctx)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			printStats(cmd.OutOrStdout(), cat.Stats())
			return nil
		},
	})

	return cmd
}

// withPool opens the configured database for a one-off command.
func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, pool)
}

func printStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func printStats(w io.Writer, s catalog.Stats) {
	fmt.Fprintf(w, "%-14s %d\n", "clinicians", s.Clinicians)
	fmt.Fprintf(w, "%-14s %d\n", "devices", s.Devices)
	fmt.Fprintf(w, "%-14s %d\n", "diagnoses", s.Diagnoses)
	fmt.Fprintf(w, "%-14s %d\n", "asa classes", s.ASAClasses)
	fmt.Fprintf(w, "%-14s %d\n", "lateralities", s.Lateralities)
}

// catalogLoader reads the reference tables from Postgres when DATABASE_URL
// is set and falls back to the built-in seed otherwise.
func catalogLoader(ctx context.Context, cfg *config.Config) (catalog.Loader, func(), error) {
	if cfg.DatabaseURL == "" {
		return catalog.StaticLoader{}, func() {}, nil
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPGLoader(pool), pool.Close, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.IsDev() {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", serviceName).Logger()
}

// server holds what the HTTP layer is built from. Backing services are
// optional; checks lists the ones to report on /health/ready.
type server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	catalog  *catalog.Catalog
	store    session.Store
	registry *prometheus.Registry
	checks   []db.Check
}

func (s *server) router() *echo.Echo {
	metrics := telemetry.NewMetrics(s.registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(s.logger)

	// Global middleware
	e.Use(middleware.Recovery(s.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(s.logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(telemetry.TracingMiddleware())
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: s.cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": serviceVersion,
		})
	})
	e.GET("/health/ready", db.HealthHandler(s.checks...))
	e.GET("/metrics", metrics.Handler())

	// Reference data for the autocomplete widgets
	apiV1 := e.Group("/api/v1")
	catalog.NewHandler(s.catalog).RegisterRoutes(apiV1)
	clinician.NewHandler(clinician.NewResolver(s.catalog)).RegisterRoutes(apiV1)

	// Workflow
	sessions := session.NewManager(
		s.store,
		session.NewTokens([]byte(s.cfg.SessionSecret), s.cfg.SessionTTL),
		session.Config{CookieName: s.cfg.SessionCookie, TTL: s.cfg.SessionTTL, Secure: s.cfg.IsProduction()},
		s.logger,
	)
	assembler := procedure.NewAssembler(
		procedure.WithLogger(s.logger),
		procedure.WithMetrics(metrics),
	)
	engine := workflow.NewEngine(s.catalog, assembler,
		workflow.WithLogger(s.logger),
		workflow.WithMetrics(metrics),
	)
	workflow.NewHandler(engine, sessions, s.logger).RegisterRoutes(e.Group("", sessions.Middleware()))

	return e
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logger
	logger := newLogger(cfg)
	if cfg.EphemeralSecret {
		logger.Warn().Msg("SESSION_SECRET not set; sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := &server{cfg: cfg, logger: logger, registry: registry}

	// Reference catalog
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		srv.catalog, err = catalog.NewPGLoader(pool).Load(ctx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		srv.checks = append(srv.checks, db.Check{Name: "database", Pinger: pool})
		logger.Info().Msg("reference catalog loaded from database")
	} else {
		srv.catalog = catalog.Default()
		logger.Info().Msg("using built-in reference catalog")
	}

	// Session store
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer store.Close()
		srv.store = store
		srv.checks = append(srv.checks, db.Check{Name: "redis", Pinger: store})
		logger.Info().Msg("sessions stored in redis")
	} else {
		store := session.NewMemoryStore()
		go sweep(ctx, store, logger)
		srv.store = store
	}

	e := srv.router()

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("tracer shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// sweep drops expired sessions from the in-memory store until ctx ends.
func sweep(ctx context.Context, store *session.MemoryStore, logger zerolog.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug().Int("expired", n).Msg("swept sessions")
			}
		}
	}
}
