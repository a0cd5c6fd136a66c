package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/adapters/catalog"
	logger_adapter "github.com/SolaireOfAndor/Summit-sub004/internal/adapters/logger"
	rabbitmq_adapter "github.com/SolaireOfAndor/Summit-sub004/internal/adapters/rabbitmq"
	"github.com/SolaireOfAndor/Summit-sub004/internal/adapters/resend"
	"github.com/SolaireOfAndor/Summit-sub004/internal/adapters/rest"
	"github.com/SolaireOfAndor/Summit-sub004/internal/configs"
	"github.com/SolaireOfAndor/Summit-sub004/internal/constants"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/usecase"
	fluentlogger "github.com/SolaireOfAndor/Summit-sub004/pkg/fluent_logger"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_common"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 10 * time.Second

// App - структура приложения
type App struct {
	config       *configs.AppConfig
	connManager  *rabbitmq_common.ConnectionManager
	mailProducer *rabbitmq_producer.Publisher
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	apiServer *rest.Server
}

// NewApp собирает все зависимости приложения (Composition Root).
func NewApp(envPath ...string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath...)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. Логгеры ---
	baseLogger, fluentClient, err := newBaseLogger(appConfig, appConfig.AppName)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 2. Каталог объявлений ---
	var listingCatalog *catalog.YAMLCatalog
	if appConfig.Catalog.Path != "" {
		listingCatalog, err = catalog.NewFileCatalog(appConfig.Catalog.Path)
	} else {
		listingCatalog, err = catalog.NewEmbeddedCatalog()
	}
	if err != nil {
		appLogger.Error("Failed to load listing catalog", err, port.Fields{"path": appConfig.Catalog.Path})
		application.closeResources()
		return nil, fmt.Errorf("failed to load listing catalog: %w", err)
	}
	appLogger.Info("Listing catalog loaded", port.Fields{"listings": listingCatalog.Len(), "path": appConfig.Catalog.Path})

	// --- 3. Отправка писем ---
	mailSender, err := application.newMailSender(baseLogger)
	if err != nil {
		application.closeResources()
		return nil, err
	}
	if !mailSender.Configured() {
		appLogger.Warn("Mail provider credential is not set, form submissions will return 503", nil)
	}
	for _, kind := range []domain.FormKind{domain.FormKindContact, domain.FormKindFeedback} {
		if missing := appConfig.MailSettings().Missing(kind); len(missing) > 0 {
			appLogger.Warn("Mail settings are incomplete", port.Fields{"form_kind": string(kind), "missing": missing})
		}
	}

	// --- 4. Use cases ---
	filterListingsUC := usecase.NewFilterListingsUseCase(listingCatalog)
	getListingUC := usecase.NewGetListingBySlugUseCase(listingCatalog)
	getFilterOptionsUC := usecase.NewGetFilterOptionsUseCase(listingCatalog)
	submitFormUC := usecase.NewSubmitFormUseCase(mailSender, appConfig.MailSettings())
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. REST ---
	listingsHandler := rest.NewListingsHandler(filterListingsUC, getListingUC, getFilterOptionsUC, appConfig.Catalog.PlaceholderImage)
	formsHandler := rest.NewFormsHandler(submitFormUC)
	router := rest.NewRouter(listingsHandler, formsHandler, appConfig.Server.CORSAllowedOrigins, baseLogger)
	application.apiServer = rest.NewServer(appConfig.Server.Port, router, baseLogger.WithFields(port.Fields{"component": "rest"}))

	return application, nil
}

// newMailSender выбирает транспорт писем по MAIL_TRANSPORT.
func (a *App) newMailSender(baseLogger port.LoggerPort) (port.MailSenderPort, error) {
	cfg := a.config

	if cfg.Mail.Transport != constants.MailTransportAMQP {
		a.logger.Info("Using Resend mail transport", port.Fields{"api_url": cfg.Resend.APIURL})
		return resend.NewClient(resend.Config{
			APIKey:  cfg.Resend.APIKey,
			BaseURL: cfg.Resend.APIURL,
			Timeout: cfg.Mail.HTTPTimeout,
		}), nil
	}

	connManager, err := newConnManager(cfg, baseLogger)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, err
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: cfg.RabbitMQ.URL},
		ExchangeName:             cfg.RabbitMQ.Exchange,
		ExchangeType:             constants.MailExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		ConfirmDelivery:          true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create mail producer", err, port.Fields{"exchange": cfg.RabbitMQ.Exchange})
		return nil, fmt.Errorf("failed to create mail producer: %w", err)
	}
	a.mailProducer = producer

	outbox, err := rabbitmq_adapter.NewMailOutboxAdapter(producer, cfg.RabbitMQ.RoutingKey)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Using RabbitMQ mail outbox transport", port.Fields{
		"exchange": cfg.RabbitMQ.Exchange, "routing_key": cfg.RabbitMQ.RoutingKey,
	})
	return outbox, nil
}

// Run запускает HTTP-сервер и ждет сигнала на завершение.
func (a *App) Run() error {
	defer a.closeResources()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// closeResources закрывает внешние соединения в обратном порядке создания.
func (a *App) closeResources() {
	if a.mailProducer != nil {
		if err := a.mailProducer.Close(); err != nil {
			a.logger.Error("Error closing mail producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен
			log.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// newBaseLogger собирает stdout и (опционально) fluent логгеры в один.
func newBaseLogger(appConfig *configs.AppConfig, serviceName string) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: serviceName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": serviceName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// newConnManager создает менеджер соединения с RabbitMQ.
func newConnManager(cfg *configs.AppConfig, baseLogger port.LoggerPort) (*rabbitmq_common.ConnectionManager, error) {
	bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: cfg.RabbitMQ.URL}, bridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	return connManager, nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
