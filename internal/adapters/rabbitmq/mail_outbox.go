package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher то, что адаптеру нужно от rabbitmq_producer.Publisher
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// MailOutboxAdapter реализует MailSenderPort публикацией письма в RabbitMQ.
type MailOutboxAdapter struct {
	producer       EventPublisher
	routingKey     string
	publishTimeout time.Duration
}

var _ port.MailSenderPort = (*MailOutboxAdapter)(nil)

func NewMailOutboxAdapter(producer EventPublisher, routingKey string) (*MailOutboxAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &MailOutboxAdapter{
		producer:       producer,
		routingKey:     routingKey,
		publishTimeout: 10 * time.Second,
	}, nil
}

// Configured: учетные данные провайдера лежат у потребителя очереди.
func (a *MailOutboxAdapter) Configured() bool {
	return a != nil && a.producer != nil
}

func (a *MailOutboxAdapter) Send(ctx context.Context, msg domain.NotificationMessage) error {
	traceID := contextkeys.TraceIDFromContext(ctx)
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "MailOutboxAdapter",
		"routing_key": a.routingKey,
		"form_kind":   string(msg.Kind),
	})

	dto := MailOutboxDTO{
		MessageID: uuid.NewString(),
		TraceID:   traceID,
		CreatedAt: time.Now().UTC(),
		Message:   msg,
	}
	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal mail message: %w", err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    dto.MessageID,
		Timestamp:    dto.CreatedAt,
		Type:         "mail." + string(msg.Kind),
		Headers:      make(amqp.Table),
	}
	if traceID != "" {
		publishing.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing mail message", port.Fields{"message_id": dto.MessageID})
	if err := a.producer.Publish(publishCtx, a.routingKey, publishing); err != nil {
		adapterLogger.Error("Failed to publish mail message", err, nil)
		return &domain.ProviderError{
			Message: err.Error(),
			Kind:    domain.DeliveryFailureGeneric,
		}
	}

	adapterLogger.Info("Mail message queued", port.Fields{"message_id": dto.MessageID})
	return nil
}
