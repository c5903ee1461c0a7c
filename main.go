package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	database "github.com/globalcounseling/counseling-api/app/db"
	appLogger "github.com/globalcounseling/counseling-api/app/logger"
	"github.com/globalcounseling/counseling-api/app/observability/metrics"
	"github.com/globalcounseling/counseling-api/app/tracer"
	"github.com/globalcounseling/counseling-api/config"
	_ "github.com/globalcounseling/counseling-api/docs"
	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/api/appointment"
	"github.com/globalcounseling/counseling-api/internal/api/auth"
	"github.com/globalcounseling/counseling-api/internal/api/therapist"
	"github.com/globalcounseling/counseling-api/internal/api/user"
	"github.com/globalcounseling/counseling-api/internal/api/wellness"
	"github.com/globalcounseling/counseling-api/internal/router"
)

// @title           Counseling Platform API
// @version         1.0
// @description     REST backend for the counseling and wellness platform.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsHandler, err := tracer.Init()
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, &cfg, logger)

	provider, err := auth.NewGoogleIdentityProvider(cfg.Google, logger)
	if err != nil {
		if !errors.Is(err, api.ErrNotConfigured) {
			logger.Error("Failed to initialize Google identity provider", slog.Any("error", err))
			os.Exit(1)
		}
		// Login stays disabled but the rest of the API serves.
		logger.Warn("Google OAuth credentials missing; /auth/google routes will answer 503")
		provider = nil
	}

	var identityProvider auth.IdentityProvider
	if provider != nil {
		identityProvider = provider
	}
	authHandler := auth.NewAuthHandlerImpl(authService, identityProvider, &cfg, logger).
		WithMetrics(metrics.Get())

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userHandler := user.NewUserHandlerImpl(user.NewUserService(userRepo, logger), logger)

	therapistRepo := therapist.NewPostgresTherapistRepo(pool, logger)
	therapistHandler := therapist.NewTherapistHandlerImpl(therapist.NewTherapistService(therapistRepo, logger), logger)

	appointmentRepo := appointment.NewPostgresAppointmentRepo(pool, logger)
	appointmentHandler := appointment.NewAppointmentHandlerImpl(appointment.NewAppointmentService(appointmentRepo, logger), logger)

	wellnessRepo := wellness.NewPostgresWellnessRepo(pool, logger)
	wellnessHandler := wellness.NewWellnessHandlerImpl(wellness.NewWellnessService(wellnessRepo, logger), logger)

	mainRouter := router.SetupRouter(&router.Config{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		TherapistHandler:   therapistHandler,
		AppointmentHandler: appointmentHandler,
		WellnessHandler:    wellnessHandler,
		Authenticate:       auth.Authenticate(logger, cfg.JWT),
	})

	mux := chi.NewMux()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(chimw.Recoverer)
	mux.Use(chimw.StripSlashes)
	mux.Use(chimw.Timeout(60 * time.Second))
	mux.Use(chimw.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
