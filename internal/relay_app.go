package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	rabbitmq_adapter "github.com/SolaireOfAndor/Summit-sub004/internal/adapters/rabbitmq"
	"github.com/SolaireOfAndor/Summit-sub004/internal/adapters/resend"
	"github.com/SolaireOfAndor/Summit-sub004/internal/configs"
	"github.com/SolaireOfAndor/Summit-sub004/internal/constants"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/usecase"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_common"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// RelayApp читает outbox из RabbitMQ и отправляет письма через Resend.
type RelayApp struct {
	config       *configs.AppConfig
	connManager  *rabbitmq_common.ConnectionManager
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	mailListener port.EventListenerPort
}

func NewRelayApp(envPath ...string) (*RelayApp, error) {
	appConfig, err := configs.LoadConfig(envPath...)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if appConfig.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required for mail relay")
	}

	serviceName := appConfig.AppName + "-mail-relay"
	baseLogger, fluentClient, err := newBaseLogger(appConfig, serviceName)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "relay_app"})

	application := &RelayApp{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	sender := resend.NewClient(resend.Config{
		APIKey:  appConfig.Resend.APIKey,
		BaseURL: appConfig.Resend.APIURL,
		Timeout: appConfig.Mail.HTTPTimeout,
	})
	if !sender.Configured() {
		// без ключа все сообщения уйдут в DLQ
		appLogger.Warn("Mail provider credential is not set, queued messages will be dead-lettered", nil)
	}

	connManager, err := newConnManager(appConfig, baseLogger)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		application.closeResources()
		return nil, err
	}
	application.connManager = connManager

	relayUC := usecase.NewRelayMailUseCase(sender)

	listener, err := rabbitmq_adapter.NewMailOutboxConsumerAdapter(rabbitmq_consumer.ConsumerConfig{
		Config:             rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:          appConfig.RabbitMQ.Queue,
		DurableQueue:       true,
		ExchangeName:       appConfig.RabbitMQ.Exchange,
		ExchangeType:       constants.MailExchangeType,
		RoutingKey:         appConfig.RabbitMQ.RoutingKey,
		DeadLetterExchange: constants.MailDeadLetterExchange,
		DeadLetterQueue:    constants.MailDeadLetterQueue,
		PrefetchCount:      appConfig.RabbitMQ.PrefetchCount,
		ConsumerTag:        serviceName,
	}, relayUC, baseLogger.WithFields(port.Fields{"component": "mail_outbox_consumer"}), connManager)
	if err != nil {
		appLogger.Error("Failed to create mail outbox consumer", err, port.Fields{"queue": appConfig.RabbitMQ.Queue})
		application.closeResources()
		return nil, err
	}
	application.mailListener = listener

	appLogger.Info("Mail relay initialized", port.Fields{
		"queue": appConfig.RabbitMQ.Queue, "exchange": appConfig.RabbitMQ.Exchange, "routing_key": appConfig.RabbitMQ.RoutingKey,
	})
	return application, nil
}

// Run слушает очередь до сигнала ОС или ошибки слушателя.
func (a *RelayApp) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)
		cancelApp()
		wg.Wait()
		a.closeResources()
	}()

	a.logger.Info("Mail relay is starting...", nil)

	listenerErrors := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Mail Outbox Listener"})
		listenerLogger.Info("Starting listener...", nil)

		if err := a.mailListener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			listenerErrors <- fmt.Errorf("mail outbox listener error: %w", err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-listenerErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

func (a *RelayApp) closeResources() {
	if a.mailListener != nil {
		if err := a.mailListener.Close(); err != nil {
			a.logger.Error("Error closing mail outbox listener", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}

	a.logger.Info("Mail relay shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
