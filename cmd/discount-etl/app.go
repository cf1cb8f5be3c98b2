package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"discount_etl/internal/catalog"
	"discount_etl/internal/classify"
	"discount_etl/internal/config"
	"discount_etl/internal/metrics"
	"discount_etl/internal/normalize"
	"discount_etl/internal/publisher"
	"discount_etl/internal/service"
	"discount_etl/internal/storage/postgres"
	"discount_etl/internal/tracing"
)

// app holds everything a command needs. Close releases it in reverse order.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	db          *sqlx.DB
	metrics     *metrics.Metrics
	coordinator *service.Coordinator
	publisher   *publisher.RabbitMQ
	tracer      *sdktrace.TracerProvider
	location    *time.Location
}

func newApp(ctx context.Context, configPath string, withPublisher bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel)

	loc, err := cfg.ETL.Location()
	if err != nil {
		return nil, err
	}
	now := func() time.Time { return time.Now().In(loc) }

	tp, err := tracing.Init(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		_ = tracing.Shutdown(ctx, tp)
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		_ = tracing.Shutdown(ctx, tp)
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewDBStatsCollector(db.DB, cfg.Database.DBName))
	m := metrics.New(reg)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		metrics:  m,
		tracer:   tp,
		location: loc,
	}

	discounts := postgres.NewDiscountStore(db)
	runLogs := postgres.NewRunLogStore(db)
	txManager := postgres.NewTransactionManager(db)

	source := catalog.New(catalog.Config{
		BaseURL:    cfg.Catalog.BaseURL,
		Timeout:    cfg.Catalog.Timeout,
		MaxPages:   cfg.Catalog.MaxPages,
		MaxRetries: cfg.Catalog.Retry.MaxRetries,
		RetryDelay: cfg.Catalog.Retry.Delay,
	}, m, logger)

	deps := service.Dependencies{
		Fetcher:    source,
		Normalizer: normalize.New(cfg.Catalog.Shops, now),
		Classifier: classify.New(),
		Upserter:   service.NewUpserter(discounts, txManager, m, logger, now),
		Sweeper:    service.NewSweeper(discounts, m, logger, now),
		Discounts:  discounts,
		RunLogs:    runLogs,
		Metrics:    m,
	}

	if withPublisher && cfg.RabbitMQ.URL != "" {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		a.publisher = pub
		deps.Publisher = pub
	}

	a.coordinator = service.NewCoordinator(deps, service.CoordinatorConfig{
		Scopes:      cfg.Scopes(),
		Concurrency: cfg.ETL.Concurrency,
		Now:         now,
	}, logger)

	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
	if err := tracing.Shutdown(ctx, a.tracer); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}
