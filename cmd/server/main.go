package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/application/usecase"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
	"github.com/geraldpay/bnpl-engine/internal/domain/service"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/adapter"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/config"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/messaging"
	pgRepo "github.com/geraldpay/bnpl-engine/internal/infrastructure/persistence/postgres"
	"github.com/geraldpay/bnpl-engine/internal/presentation/rest"
	"github.com/geraldpay/bnpl-engine/pkg/kafka"
	"github.com/geraldpay/bnpl-engine/pkg/observability"
	"github.com/geraldpay/bnpl-engine/pkg/postgres"
)

const migrationsSource = "file://internal/infrastructure/persistence/postgres/migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger(observability.LogConfig{Level: "info", Format: "json"}).
			Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(cfg.Log)
	logger.Info("starting bnpl engine", "http_port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database -----------------------------------------------------------
	if err := postgres.RunMigrations(cfg.Postgres.DSN(), migrationsSource); err != nil {
		logger.Error("running migrations", "error", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// --- Metrics ------------------------------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "bnpl-engine",
	})
	if err != nil {
		logger.Error("initializing metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	// --- Infrastructure adapters -------------------------------------------
	decisionRepo := pgRepo.NewDecisionRepository(pool)
	planRepo := pgRepo.NewPlanRepository(pool)
	webhookRepo := pgRepo.NewWebhookRepository(pool)

	producer := kafka.NewProducer(cfg.Kafka.Config)
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)

	var bankClient port.BankClient
	if cfg.Bank.UseStub {
		logger.Warn("using stub bank client")
		bankClient = adapter.NewStubBankClient()
	} else {
		bankClient = adapter.NewBankClient(
			cfg.Bank.BaseURL, cfg.Bank.Timeout, cfg.Bank.MaxAttempts, cfg.Bank.RetryBackoff, logger,
		)
	}

	notifier := adapter.NewLedgerNotifier(
		cfg.Ledger.WebhookURL, cfg.Ledger.Timeout, cfg.Ledger.MaxAttempts, cfg.Ledger.RetryBackoff,
		webhookRepo, logger,
	)

	// --- Use cases ----------------------------------------------------------
	engine := service.NewDecisionEngine(cfg.Scoring)
	requestUC := usecase.NewRequestDecisionUseCase(
		engine, bankClient, decisionRepo, planRepo, publisher, notifier, logger,
	)
	getDecisionUC := usecase.NewGetDecisionUseCase(decisionRepo)
	historyUC := usecase.NewGetDecisionHistoryUseCase(decisionRepo)
	getPlanUC := usecase.NewGetPlanUseCase(planRepo)
	userPlansUC := usecase.NewGetUserPlansUseCase(planRepo)

	// --- HTTP server --------------------------------------------------------
	mux := http.NewServeMux()
	rest.NewDecisionHandler(requestUC, getDecisionUC, historyUC, logger).RegisterRoutes(mux)
	rest.NewPlanHandler(getPlanUC, userPlansUC).RegisterRoutes(mux)
	rest.NewHealthHandler(pool).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      rest.WithRequestLogging(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("bnpl engine stopped")
}
