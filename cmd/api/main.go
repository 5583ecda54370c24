package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/inkwellpress/inkwell-backend/api/routes"
	"github.com/inkwellpress/inkwell-backend/internal/books"
	"github.com/inkwellpress/inkwell-backend/internal/cart"
	"github.com/inkwellpress/inkwell-backend/internal/contact"
	"github.com/inkwellpress/inkwell-backend/internal/diagnostics"
	"github.com/inkwellpress/inkwell-backend/internal/payments"
	"github.com/inkwellpress/inkwell-backend/pkg/config"
	"github.com/inkwellpress/inkwell-backend/pkg/db"
	"github.com/inkwellpress/inkwell-backend/pkg/email"
	"github.com/inkwellpress/inkwell-backend/pkg/logger"
	"github.com/inkwellpress/inkwell-backend/pkg/metrics"
	"github.com/inkwellpress/inkwell-backend/pkg/migrate"
	"github.com/inkwellpress/inkwell-backend/pkg/redis"
	"github.com/inkwellpress/inkwell-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	snapshotStore, err := cart.NewRedisSnapshotStore(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart snapshot store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(snapshotStore, cart.NewLogNotifier(logg), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	booksService, err := books.NewService(books.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create books service", err)
		os.Exit(1)
	}

	var mailer email.Sender
	if cfg.Sendgrid.APIKey != "" {
		client, err := email.NewClient(context.Background(), cfg.Sendgrid, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create email client", err)
			os.Exit(1)
		}
		mailer = client
	} else {
		logg.Warn(context.Background(), "sendgrid not configured, contact notifications disabled")
	}

	contactService, err := contact.NewService(contact.NewRepository(dbClient.DB()), mailer, cfg.Contact, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	diagnosticsService, err := diagnostics.NewService(
		diagnostics.NewProber(dbClient.DB(), dbClient),
		cfg.Supabase,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create diagnostics service", err)
		os.Exit(1)
	}

	var paymentsService payments.Service
	if cfg.Stripe.APIKey != "" {
		stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create stripe client", err)
			os.Exit(1)
		}
		paymentsService, err = payments.NewService(stripeClient, cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create payments service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe not configured, payment intents disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			registry,
			booksService,
			cartService,
			contactService,
			diagnosticsService,
			paymentsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
