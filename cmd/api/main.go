package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"documind/docs"
	"documind/internal/analysis"
	"documind/internal/classify"
	"documind/internal/config"
	"documind/internal/database"
	"documind/internal/database/migration"
	"documind/internal/extract"
	"documind/internal/fetcher"
	"documind/internal/handoff"
	handlers "documind/internal/http/handler"
	"documind/internal/http/middleware"
	"documind/internal/logging"
	tracing "documind/internal/otel"
	"documind/internal/pipeline"
	"documind/internal/platform/rabbitmq"
	platformredis "documind/internal/platform/redis"
	"documind/internal/registry"
	"documind/internal/repository/postgres"
	"documind/internal/responder"
	"documind/internal/service"
	"documind/internal/storage"
)

// @title DocuMind API
// @version 1.0
// @description KMRL document ingestion, classification and Q&A service.
// @BasePath /
func main() {
	// Load configuration from defaults, CONFIG_FILE and environment (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, time.UTC, "info").Fatal().Str("component", "config").Err(err).Msg("")
	}
	logger := logging.New(os.Stdout, cfg.Location(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Str("component", "api").Str("event", "exit").Err(err).Msg("")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *log.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// PostgreSQL connection (pooling via database/sql) and schema
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// S3-compatible object storage for uploads and the inbox
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	slot, err := newHandoffSlot(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Registry: single writer, subscribers notified after each commit
	reg := registry.New(postgres.NewDocumentPostgres(db), slot,
		registry.WithHighlight(cfg.Pipeline.Highlight),
		registry.WithLogger(logger),
	)
	counter, err := registry.CategoryCounter(promReg)
	if err != nil {
		return fmt.Errorf("register registry metrics: %w", err)
	}
	reg.Subscribe(counter)

	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer conn.Close()
		reg.Subscribe(rabbitmq.NewDocumentPublisher(conn, cfg.RabbitMQ.Exchange, logger).Notify)
	}

	analyzer, err := newAnalyzer(ctx, cfg.Gemini, logger)
	if err != nil {
		return err
	}

	router := classify.NewRouter()
	pipeMetrics, err := pipeline.NewMetrics(promReg)
	if err != nil {
		return fmt.Errorf("register pipeline metrics: %w", err)
	}
	engine, err := pipeline.NewEngine(
		pipeline.Deps{
			Source:    storage.ObjectSource{Store: objStore},
			Extractor: extract.New(),
			Analyzer:  analyzer,
			Router:    router,
			Sink:      reg,
		},
		pipeline.WithDurations(pipeline.Durations{
			Fetching:   cfg.Pipeline.Fetching,
			Extracting: cfg.Pipeline.Extracting,
			Analyzing:  cfg.Pipeline.Analyzing,
			Finalizing: cfg.Pipeline.Finalizing,
			Highlight:  cfg.Pipeline.Highlight,
		}),
		pipeline.WithTick(cfg.Pipeline.Tick),
		pipeline.WithRetention(cfg.Pipeline.Retention),
		pipeline.WithWorkers(cfg.Pipeline.Workers),
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(pipeMetrics),
	)
	if err != nil {
		return err
	}
	engine.Start(ctx)
	defer engine.Stop()

	if cfg.Fetcher.Enabled {
		f := fetcher.New(objStore, engine, fetcher.Config{
			Schedule:    cfg.Fetcher.Schedule,
			InboxPrefix: cfg.Fetcher.InboxPrefix,
			UploadedBy:  cfg.Fetcher.UploadedBy,
		}, logger)
		if err := f.Start(); err != nil {
			return err
		}
		defer f.Stop()
	}

	docSvc := service.NewDocumentService(objStore, reg, engine, router)
	chatSvc := service.NewChatService(postgres.NewTurnPostgres(db), reg, responder.New(),
		service.WithReplyDelay(cfg.Chat.ReplyDelay),
		service.WithChatLogger(logger),
	)
	defer chatSvc.Close()

	app := fiber.New(handlers.AppConfig(storage.MaxSourceSize + 1<<20))

	// RequestID adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	if tracing.Enabled() {
		app.Use(otelfiber.Middleware())
	} else {
		app.Use(middleware.Noop())
	}
	app.Use(middleware.Logger(logger))

	promMW, err := middleware.NewPrometheusMiddleware(promReg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, docSvc, chatSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("component", "api").Str("event", "server_starting").Str("port", cfg.Port).Msg("")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Str("component", "api").Str("event", "server_stopping").Msg("")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func newHandoffSlot(ctx context.Context, cfg config.RedisConfig) (handoff.Slot, error) {
	if cfg.Addr == "" {
		return handoff.NewMemory(), nil
	}
	client, err := platformredis.New(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, err
	}
	return handoff.NewRedis(client, cfg.HandoffKey, cfg.HandoffTTL), nil
}

func newAnalyzer(ctx context.Context, cfg config.GeminiConfig, logger *log.Logger) (analysis.Analyzer, error) {
	if cfg.APIKey == "" {
		logger.Info().Str("component", "analysis").Str("event", "analyzer_selected").Str("analyzer", "mock").Msg("")
		return analysis.NewMock(time.Now), nil
	}
	gen, err := analysis.NewGeminiGenerator(ctx, analysis.GeminiConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini: %w", err)
	}
	logger.Info().Str("component", "analysis").Str("event", "analyzer_selected").
		Str("analyzer", "gemini").Str("model", cfg.Model).Msg("")
	return analysis.NewModelAnalyzer(gen, cfg.Timeout, time.Now), nil
}
