package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account/internal/captcha"
	"account/internal/config"
	"account/internal/events"
	"account/internal/mail"
	"account/internal/observability/logging"
	"account/internal/observability/metrics"
	accountotel "account/internal/otel"
	"account/internal/service"
	impl "account/internal/service/impl"
	"account/internal/store"
	httpx "account/internal/transport/http"
	"account/pkg/db"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "account"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	metrics.MustRegister(serviceName)

	shutdownTracing, err := accountotel.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("init otel", "error", err)
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	st := store.New(gdb)
	if err := st.Migrate(ctx); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		logger.Error("mail templates", "error", err)
		os.Exit(1)
	}

	var publisher service.EventPublisher = events.NopPublisher{}
	if cfg.MQTTBrokerURL != "" {
		mq, err := events.NewMQTTPublisher(events.MQTTConfig{
			BrokerURL:   cfg.MQTTBrokerURL,
			ClientID:    cfg.MQTTClientID,
			Username:    cfg.MQTTUser,
			Password:    cfg.MQTTPassword,
			TopicPrefix: cfg.MQTTTopicPrefix,
			QoS:         1,
		})
		if err != nil {
			logger.Error("mqtt connect", "error", err)
			os.Exit(1)
		}
		defer mq.Close()
		publisher = mq
	}

	pw := impl.NewPasswordServiceArgon2id()
	handler := &httpx.Handler{
		Users:   impl.NewUserServiceImpl(st, pw, cfg.ActivationTokenTTL),
		Devices: impl.NewDeviceServiceImpl(st),
		Factory: impl.NewFactoryCatalogImpl(st),
		Emails: impl.NewEmailServiceImpl(mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			Timeout:  cfg.SMTPTimeout,
		}), renderer),
		Captcha: captcha.NewClient(cfg.RecaptchaURL, cfg.RecaptchaSecret, cfg.RecaptchaTimeout),
		Tokens: impl.NewTokenServiceHS256(impl.TokenConfig{
			Issuer:     cfg.Issuer,
			AccessTTL:  cfg.AccessTTL,
			SigningKey: []byte(cfg.JWTSecret),
		}),
		Events: publisher,
		Links: httpx.Links{
			Host:          cfg.Host,
			BasePath:      cfg.BasePath,
			LoginRedirect: cfg.LoginRedirect,
		},
	}

	router := httpx.NewRouter(handler, httpx.RouterOptions{
		BasePath:           cfg.BasePath,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.RequestTimeout,
		Ready:              st.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info("account service listening", "addr", srv.Addr, "base_path", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server", "error", err)
	}
	logger.Info("account service stopped")
}
