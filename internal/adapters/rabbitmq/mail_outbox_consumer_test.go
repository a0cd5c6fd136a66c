package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayFunc func(ctx context.Context, msg domain.NotificationMessage) error

func (f relayFunc) Execute(ctx context.Context, msg domain.NotificationMessage) error {
	return f(ctx, msg)
}

func TestMailOutboxConsumerHandlesMessage(t *testing.T) {
	var (
		gotMsg   domain.NotificationMessage
		gotTrace string
		gotKey   string
	)
	adapter := &MailOutboxConsumerAdapter{
		useCase: relayFunc(func(ctx context.Context, msg domain.NotificationMessage) error {
			gotMsg = msg
			gotTrace = contextkeys.TraceIDFromContext(ctx)
			gotKey = contextkeys.IdempotencyKeyFromContext(ctx)
			return nil
		}),
		logger: &recordingLogger{},
	}

	body, err := json.Marshal(MailOutboxDTO{
		MessageID: "m-1",
		CreatedAt: time.Now().UTC(),
		Message:   feedbackMessage(),
	})
	require.NoError(t, err)

	err = adapter.messageHandler(context.Background(), amqp.Delivery{
		Body:    body,
		Headers: amqp.Table{"x-trace-id": "c0ffee00-0000-4000-8000-000000000001"},
	})
	require.NoError(t, err)
	assert.Equal(t, feedbackMessage(), gotMsg)
	assert.Equal(t, "c0ffee00-0000-4000-8000-000000000001", gotTrace)
	assert.Equal(t, "m-1", gotKey)
}

func TestMailOutboxConsumerRejectsBadPayload(t *testing.T) {
	called := false
	adapter := &MailOutboxConsumerAdapter{
		useCase: relayFunc(func(context.Context, domain.NotificationMessage) error {
			called = true
			return nil
		}),
		logger: &recordingLogger{},
	}

	err := adapter.messageHandler(context.Background(), amqp.Delivery{Body: []byte("{not json")})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestMailOutboxConsumerPropagatesDeliveryError(t *testing.T) {
	want := &domain.DeliveryError{Kind: domain.DeliveryFailureGeneric, Err: errors.New("503 from provider")}
	adapter := &MailOutboxConsumerAdapter{
		useCase: relayFunc(func(context.Context, domain.NotificationMessage) error { return want }),
		logger:  &recordingLogger{},
	}

	body, _ := json.Marshal(MailOutboxDTO{MessageID: "m-2", Message: feedbackMessage()})
	err := adapter.messageHandler(context.Background(), amqp.Delivery{Body: body})
	assert.ErrorIs(t, err, want)
}
