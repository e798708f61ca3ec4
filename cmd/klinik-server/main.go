package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/klinik/klinik/internal/config"
	"github.com/klinik/klinik/internal/domain/dashboard"
	"github.com/klinik/klinik/internal/domain/diagnostics"
	"github.com/klinik/klinik/internal/domain/emergency"
	"github.com/klinik/klinik/internal/domain/examination"
	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/domain/rikkes"
	"github.com/klinik/klinik/internal/domain/scheduling"
	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/middleware"
	"github.com/klinik/klinik/internal/platform/openapi"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "klinik-server",
		Short:        "Clinic records API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(statsCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	return logger.Level(lvl)
}

// openPool loads config and connects; shared by every command that talks
// to the database.
func openPool(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

func runServer() error {
	ctx := context.Background()
	cfg, pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger := newLogger(cfg)
	logger.Info().Str("schema", cfg.DBSchema).Msg("connected to database")

	e := newServer(cfg, logger, pool)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

type routeRegistrar interface {
	RegisterRoutes(api *echo.Group)
}

// newServer builds the echo instance with middleware and all routes. The
// pool is only used when a request reaches a repository.
func newServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) *echo.Echo {
	e, apiV1 := newEcho(cfg, logger)
	e.GET("/health/db", db.HealthHandler(pool, cfg.DBSchema))

	identitySvc := identity.NewService(
		identity.NewPatientRepoPG(pool),
		identity.NewDoctorRepoPG(pool),
		identity.NewNurseRepoPG(pool),
	)
	emergencySvc := emergency.NewService(emergency.NewCaseRepoPG(pool), emergency.NewBedRepoPG(pool))

	handlers := []routeRegistrar{
		identity.NewHandler(identitySvc),
		scheduling.NewHandler(scheduling.NewService(scheduling.NewAppointmentRepoPG(pool))),
		emergency.NewHandler(emergencySvc),
		diagnostics.NewHandler(diagnostics.NewService(diagnostics.NewLabTestRepoPG(pool))),
		examination.NewHandler(examination.NewService(examination.NewExaminationRepoPG(pool))),
		rikkes.NewHandler(rikkes.NewService(rikkes.NewParticipantRepoPG(pool), rikkes.NewExaminationRepoPG(pool))),
		dashboard.NewHandler(dashboard.NewService(dashboard.NewRepoPG(pool))),
	}
	for _, h := range handlers {
		h.RegisterRoutes(apiV1)
	}
	openapi.NewGenerator(version, "/api/v1", apiResources()...).RegisterRoutes(apiV1)

	return e
}

// newEcho installs the middleware chain and returns the /api/v1 group that
// every domain handler registers on.
func newEcho(cfg *config.Config, logger zerolog.Logger) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	if cfg.MetricsEnabled {
		metrics := middleware.NewMetrics()
		e.Use(metrics.Middleware())
		e.GET("/metrics", metrics.Handler())
	}

	apiV1 := e.Group("/api/v1", middleware.RequestTimeout(cfg.RequestTimeout))
	return e, apiV1
}

// apiResources lists the CRUD collections for the generated API document.
func apiResources() []openapi.Resource {
	return []openapi.Resource{
		{Name: "Patient", Path: "/patients", Filters: []string{"q", "gender"}, Model: identity.Patient{}},
		{Name: "Doctor", Path: "/doctors", Filters: []string{"specialization", "active", "department"}, Model: identity.Doctor{}},
		{Name: "Nurse", Path: "/nurses", Filters: []string{"active"}, Model: identity.Nurse{}},
		{Name: "Appointment", Path: "/appointments", Filters: []string{"department", "status", "patient_id", "doctor_id",
			"appointment_date", "date_from", "date_to", "all"}, Model: scheduling.Appointment{}},
		{Name: "IGDCase", Path: "/igd-cases", Filters: []string{"status", "triage", "patient_id"}, Model: emergency.Case{}},
		{Name: "Bed", Path: "/beds", Filters: []string{"status"}, Model: emergency.Bed{}},
		{Name: "LabTest", Path: "/lab-tests", Filters: []string{"status", "priority", "test_type", "patient_id",
			"completed_from"}, Model: diagnostics.LabTest{}},
		{Name: "Examination", Path: "/examinations", Filters: []string{"appointment_id", "patient_id", "doctor_id",
			"nurse_id", "examination_type", "status"}, Model: examination.Examination{}},
		{Name: "RikkesParticipant", Path: "/rikkes/participants", Filters: []string{"status", "overall_result", "batch",
			"examination_date", "q"}, Model: rikkes.Participant{}},
		{Name: "RikkesExamination", Path: "/rikkes/examinations", Filters: []string{"participant_id", "status",
			"examination_type"}, Model: rikkes.Examination{}},
	}
}
