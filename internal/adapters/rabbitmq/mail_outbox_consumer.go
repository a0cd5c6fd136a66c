package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port/usecases_port"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_common"
	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MailOutboxConsumerAdapter слушает очередь outbox и передает письма в RelayMail.
type MailOutboxConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  usecases_port.RelayMailUseCase
	logger   port.LoggerPort
}

var _ port.EventListenerPort = (*MailOutboxConsumerAdapter)(nil)

func NewMailOutboxConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.RelayMailUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*MailOutboxConsumerAdapter, error) {
	if useCase == nil {
		return nil, fmt.Errorf("rabbitmq adapter: relay use case cannot be nil")
	}

	adapter := &MailOutboxConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for mail outbox: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *MailOutboxConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	traceID, ok := d.Headers["x-trace-id"].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
		"message_id":   d.MessageId,
	})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	var dto MailOutboxDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Error unmarshalling mail DTO, rejecting message", err, nil)
		return fmt.Errorf("unmarshal mail DTO: %w", err)
	}

	// ключ идемпотентности привязан к сообщению outbox, а не к trace_id
	messageID := dto.MessageID
	if messageID == "" {
		messageID = d.MessageId
	}
	if messageID != "" {
		ctx = contextkeys.ContextWithIdempotencyKey(ctx, messageID)
	}

	msgLogger.Info("Received queued mail message", port.Fields{"form_kind": string(dto.Message.Kind)})
	if err := a.useCase.Execute(ctx, dto.Message); err != nil {
		return err
	}

	msgLogger.Info("Queued mail message delivered", nil)
	return nil
}

// Start реализует EventListenerPort
func (a *MailOutboxConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *MailOutboxConsumerAdapter) Close() error {
	return a.consumer.Close()
}
