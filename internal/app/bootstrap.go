package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/lmnh_kiosk/config"
	"github.com/Gunvolt24/lmnh_kiosk/internal/kafka"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
	"github.com/Gunvolt24/lmnh_kiosk/internal/repo/postgres"
	"github.com/Gunvolt24/lmnh_kiosk/internal/report"
	rest "github.com/Gunvolt24/lmnh_kiosk/internal/transport/http"
	"github.com/Gunvolt24/lmnh_kiosk/internal/usecase"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/ctxmeta"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/logger"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/metrics"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/telemetry"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/validate"
)

// DefaultTopic - топик киосков по умолчанию.
const DefaultTopic = "lmnh"

const defaultGracefulTimeout = 5 * time.Second

// Options - параметры запуска из флагов командной строки; читаются один раз при старте.
type Options struct {
	ErrorLogEnabled bool   // --l: дублировать отказы в файл ERROR_LOG_PATH
	Earliest        bool   // --e: читать с самого раннего оффсета, если позиции группы нет
	Limit           int    // --n: сколько сообщений получить; < 0 - без ограничения
	Topic           string // --t
}

// App - собранный пайплайн: консьюмер и необязательный служебный HTTP-сервер.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server // nil, если HTTP_ADDR пуст
	KafkaConsumer   ports.MessageConsumer
	gracefulTimeout time.Duration
}

// Cleanup - функция освобождения ресурсов.
type Cleanup func()

// applyGinMode - устанавливает режим Gin по строке;
// неизвестное значение → release и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
		log.Warnf(ctx, "unknown HTTP_GIN_MODE=%q, fallback to release", mode)
	}
}

// ConsumerConfigFrom - параметры консьюмера из окружения и флагов.
func ConsumerConfigFrom(cfg *config.Config, opts Options) kafka.ConsumerConfig {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		topic = DefaultTopic
	}
	startOffset := "last"
	if opts.Earliest {
		startOffset = "first"
	}

	return kafka.ConsumerConfig{
		Brokers:          cfg.BootstrapServers,
		Topic:            topic,
		GroupID:          cfg.Kafka.GroupID,
		StartOffset:      startOffset,
		Limit:            opts.Limit,
		PollTimeout:      cfg.Kafka.PollTimeout,
		ProcessTimeout:   cfg.Kafka.ProcessTimeout,
		SecurityProtocol: cfg.Kafka.SecurityProtocol,
		SASLMechanism:    cfg.SASL.Mechanism,
		Username:         cfg.SASL.Username,
		Password:         cfg.SASL.Password,
	}
}

// Bootstrap - собирает зависимости; возвращает приложение, контекст с run_id, очистку и ошибку.
// Очистка выполняется в обратном порядке и безопасна при частичной сборке.
func Bootstrap(ctx context.Context, cfg *config.Config, opts Options) (*App, context.Context, Cleanup, error) {
	ctx = ctxmeta.WithRunID(ctx, ctxmeta.NewRunID())

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, ctx, func() {}, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}
	fail := func(err error) (*App, context.Context, Cleanup, error) {
		logg.Errorf(ctx, "bootstrap failed: %v", err)
		cleanup()
		return nil, ctx, func() {}, err
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию - no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				sctx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
				defer cancel()
				if err := shutdownTrace(sctx); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		return fail(fmt.Errorf("connect to database: %w", err))
	}
	closers = append(closers, func() {
		pool.Close()
		logg.Infof(ctx, "database connection closed")
	})

	errorLogPath := ""
	if opts.ErrorLogEnabled {
		errorLogPath = cfg.ErrorLog.Path
	}
	reporter := report.NewReporter(logg, errorLogPath)
	closers = append(closers, func() {
		if err := reporter.Close(); err != nil {
			logg.Warnf(ctx, "close error log: %v", err)
		}
	})

	repo := postgres.NewInteractionRepository(pool)
	service := usecase.NewInteractionService(repo, reporter, logg, validate.NewInteractionValidator())

	kafkaCfg := ConsumerConfigFrom(cfg, opts)
	consumer, err := kafka.NewConsumer(&kafkaCfg, service, logg)
	if err != nil {
		return fail(fmt.Errorf("create kafka consumer: %w", err))
	}
	closers = append(closers, func() {
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	})

	app := &App{
		Logger:          logg,
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if cfg.HTTP.Addr != "" {
		applyGinMode(ctx, cfg.HTTP.GinMode, logg)

		// Имя сервиса для otelgin (только при включённом трейсинге).
		otelServiceName := ""
		if cfg.Tracing.Enabled {
			otelServiceName = cfg.Tracing.ServiceName
		}
		router := rest.NewRouter(rest.NewHandler(repo, logg, 0), otelServiceName)
		app.HTTPServer = &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	logg.Infof(ctx, "pipeline assembled topic=%s start_offset=%s limit=%d error_log=%t",
		kafkaCfg.Topic, kafkaCfg.StartOffset, kafkaCfg.Limit, opts.ErrorLogEnabled)

	return app, ctx, cleanup, nil
}

// Run - запускает консьюмера (и служебный HTTP, если он есть) и ждёт остановки консьюмера.
// Возвращает фатальную ошибку консьюмера; nil - лимит исчерпан или родительский контекст отменён.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumerDone := make(chan error, 1)
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		consumerDone <- a.KafkaConsumer.Run(runCtx)
	}()

	httpErr := make(chan error, 1)
	if a.HTTPServer != nil {
		go func() {
			a.Logger.Infof(ctx, "ops http server starting (addr=%s)", a.HTTPServer.Addr)
			if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				httpErr <- err
			}
		}()
	}

	var runErr error
	select {
	case err := <-consumerDone:
		runErr = a.consumerResult(ctx, err)
	case err := <-httpErr:
		a.Logger.Errorf(ctx, "ops http server failed: %v", err)
		runErr = fmt.Errorf("ops http server: %w", err)
		cancel()
		<-consumerDone
	}

	a.shutdownHTTP(ctx)

	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "pipeline stopped")
	return runErr
}

// consumerResult - ошибка отмены родительского контекста считается штатной остановкой.
func (a *App) consumerResult(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		a.Logger.Infof(ctx, "shutdown requested: %v", err)
		return nil
	default:
		a.Logger.Errorf(ctx, "kafka consumer stopped with error: %v", err)
		return err
	}
}

func (a *App) shutdownHTTP(ctx context.Context) {
	if a.HTTPServer == nil {
		return
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = defaultGracefulTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "ops http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "ops http server stopped gracefully")
	}
}
