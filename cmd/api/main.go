package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/paddock/internal/api/handlers"
	"github.com/pratik-mahalle/paddock/internal/api/router"
	"github.com/pratik-mahalle/paddock/internal/config"
	"github.com/pratik-mahalle/paddock/internal/email"
	"github.com/pratik-mahalle/paddock/internal/payments"
	"github.com/pratik-mahalle/paddock/internal/pkg/logger"
	"github.com/pratik-mahalle/paddock/internal/pkg/validator"
	"github.com/pratik-mahalle/paddock/internal/repository/postgres"
	"github.com/pratik-mahalle/paddock/internal/services"
	"github.com/pratik-mahalle/paddock/internal/worker"
	"github.com/pratik-mahalle/paddock/migrations"
)

// @title Paddock API
// @version 1.0
// @description Track-day session tracking with team sharing and subscription billing
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database ready")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	motorcycleRepo := postgres.NewMotorcycleRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	planRepo := postgres.NewPlanRepository(db)

	// Outbound email. Without explicit opt-in all mail is dropped, so a
	// dev environment never needs AWS credentials.
	var sender email.Sender = email.NoopSender{}
	if cfg.Email.Enabled {
		sesSender, err := email.NewSESSender(context.Background(), cfg.Email)
		if err != nil {
			log.Fatalf("Failed to initialize email sender: %v", err)
		}
		sender = sesSender
	}

	provider := payments.NewStripeProvider(
		cfg.Stripe.APIKey,
		cfg.Stripe.WebhookSecret,
		cfg.Stripe.SuccessURL,
		cfg.Stripe.CancelURL,
	)

	// Services
	userService := services.NewUserService(userRepo, log)
	teamService := services.NewTeamService(teamRepo, userRepo, sender, cfg.Server.FrontendURL, log)
	motorcycleService := services.NewMotorcycleService(motorcycleRepo, teamRepo, log)
	sessionService := services.NewSessionService(sessionRepo, userService, motorcycleService, log)
	billingService := services.NewBillingService(planRepo, userRepo, provider, log)

	val := validator.New()

	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(db, log),
		Auth:       handlers.NewAuthHandler(userService, sender, cfg, log, val),
		Team:       handlers.NewTeamHandler(teamService, log, val),
		Motorcycle: handlers.NewMotorcycleHandler(motorcycleService, log, val),
		Session:    handlers.NewSessionHandler(sessionService, log, val),
		Billing:    handlers.NewBillingHandler(billingService, userService, log, val),
		Webhook:    handlers.NewWebhookHandler(provider, billingService, log),
		Admin:      handlers.NewAdminHandler(userService, cfg, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, userService, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background expiry sweeper
	var sweeper *worker.ExpirySweeper
	if cfg.Sweeper.Enabled {
		sweeper, err = worker.NewExpirySweeper(userRepo, cfg.Sweeper.Schedule, log)
		if err != nil {
			log.Fatalf("Failed to create expiry sweeper: %v", err)
		}
		if err := sweeper.Start(ctx); err != nil {
			log.Fatalf("Failed to start expiry sweeper: %v", err)
		}
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sweeper != nil {
		sweeper.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}

	log.Info("Server stopped")
}
