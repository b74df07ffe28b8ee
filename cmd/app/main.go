package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant/cmd"
	httpadapter "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/adapters/out/smtp"
	"restaurant/internal/adapters/out/stripe"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/background"
	"restaurant/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err = run(configs, zapLogger); err != nil {
		zapLogger.Fatal("service stopped", zap.Error(err))
	}
}

func run(configs cmd.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	dispatcher := background.NewDispatcher(zapLogger, configs.NotificationConcurrency, configs.NotificationTimeout)

	publisher, closePublisher := statusPublisher(configs, zapLogger)
	defer closePublisher()

	payments := stripe.NewGateway(stripe.NewClient(configs.StripeSecretKey).CheckoutSessions, stripe.GatewaySettings{
		Currency: configs.Currency,
		AppURL:   configs.AppURL,
	})

	app := cmd.NewCompositionRoot(configs, gormDB, cmd.Adapters{
		Tasks:     dispatcher,
		Notifier:  notifier(configs, zapLogger),
		Payments:  payments,
		Webhooks:  stripe.NewWebhookVerifier(configs.StripeWebhookSecret),
		Publisher: publisher,
	}, zapLogger)

	e, err := newWebServer(ctx, app, zapLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("http server listening", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		jobManager.StopAll()
		return errors.Join(e.Shutdown(shutdownCtx), dispatcher.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

func newWebServer(ctx context.Context, app cmd.CompositionRoot, zapLogger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.JSONSerializer = httpadapter.JSONSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			zapLogger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := httpadapter.RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = httpadapter.RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	httpadapter.NewServer(app.HTTPUseCases(), zapLogger).Register(e, validator)
	return e, nil
}

func notifier(configs cmd.Config, zapLogger *zap.Logger) ports.Notifier {
	if !configs.SMTPEnabled() {
		return smtp.NewNoopNotifier(zapLogger)
	}
	dialer := smtp.NewDialer(configs.SMTPHost, configs.SMTPPort, configs.SMTPUser, configs.SMTPPassword)
	return smtp.NewNotifier(dialer, smtp.Settings{
		FromAddress:    configs.SMTPFrom,
		RestaurantName: configs.RestaurantName,
		AppURL:         configs.AppURL,
	}, zapLogger)
}

// statusPublisher returns nil when no broker is configured or reachable;
// status changes are then only persisted.
func statusPublisher(configs cmd.Config, zapLogger *zap.Logger) (ports.StatusEventPublisher, func()) {
	if configs.RabbitMQURL == "" {
		zapLogger.Info("RABBITMQ_URL not set, status events are not published")
		return nil, func() {}
	}

	conn, err := rabbitmq.Dial(configs.RabbitMQURL)
	if err != nil {
		zapLogger.Error("rabbitmq unavailable, status events are not published", zap.Error(err))
		return nil, func() {}
	}
	return rabbitmq.NewStatusPublisher(conn), func() {
		if err := conn.Close(); err != nil {
			zapLogger.Warn("close rabbitmq connection", zap.Error(err))
		}
	}
}
