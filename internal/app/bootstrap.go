package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders_live/config"
	"github.com/Gunvolt24/orders_live/internal/engine"
	"github.com/Gunvolt24/orders_live/internal/feed"
	"github.com/Gunvolt24/orders_live/internal/feed/kafka"
	"github.com/Gunvolt24/orders_live/internal/notify"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/internal/remote/postgres"
	"github.com/Gunvolt24/orders_live/internal/store/memory"
	rest "github.com/Gunvolt24/orders_live/internal/transport/http"
	"github.com/Gunvolt24/orders_live/internal/usecase"
	"github.com/Gunvolt24/orders_live/pkg/logger"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
	"github.com/Gunvolt24/orders_live/pkg/telemetry"
	"github.com/Gunvolt24/orders_live/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger
	Engine          *engine.Engine
	Hub             *rest.Hub
	HTTPServer      *http.Server
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений к удалённому хранилищу.
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка движка синхронизации: удалённое хранилище, локальный снимок,
	// лента изменений, уведомления, шлюз мутаций.
	remote := postgres.NewOrderRemote(pool)
	store := memory.NewOrderStore()

	hub := rest.NewHub(logg)
	dispatcher := notify.NewDispatcher(hub, nil, logg,
		notify.WithToastDuration(cfg.Notify.ToastDuration),
	)

	source := kafka.NewSource(kafka.SourceConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Kafka.Topic,
		GroupID:     cfg.Kafka.GroupID,
		StartOffset: cfg.Kafka.StartOffset,
		QueueSize:   cfg.Kafka.QueueSize,
	}, logg)

	subscriber := feed.NewSubscriber(source, remote, store, dispatcher, logg, cfg.Feed.ReconnectDelay)
	gateway := usecase.NewOrderGateway(remote, store, validate.NewOrderValidator(), dispatcher, logg, cfg.Notify.Language)
	eng := engine.New(store, subscriber, gateway, dispatcher, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(eng, hub, logg)
	router := rest.NewRouter(httpHandler, rest.RouterOptions{ServiceName: otelServiceName})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		Engine:          eng,
		Hub:             hub,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		eng.Stop()
		pool.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает движок и HTTP-сервер; ждёт отмены контекста или
// фоновой ошибки и останавливает всё в обратном порядке.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Движок: подписка на ленту + полная выборка.
	a.Logger.Infof(ctx, "sync engine starting")
	if err := a.Engine.Start(ctx); err != nil {
		return err
	}

	// Прокачка прибытий в SSE-поток панели.
	pumpCtx, stopPump := context.WithCancel(ctx)
	defer stopPump()
	go a.Hub.PumpArrivals(pumpCtx, a.Engine.Arrivals())

	// HTTP-сервер.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "background error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка движка: закрывает подключение к ленте.
	a.Engine.Stop()

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
