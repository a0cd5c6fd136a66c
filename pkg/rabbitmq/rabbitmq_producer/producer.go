package rabbitmq_producer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConfirmed брокер отклонил сообщение (basic.nack)
var ErrNotConfirmed = errors.New("producer: message was not confirmed by broker")

// PublisherConfig конфигурация производителя
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName    string // пустая строка для default exchange
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	ExchangeArgs    amqp.Table

	// если false, обменник должен уже существовать
	DeclareExchangeIfMissing bool

	// ждать подтверждения брокера на каждую публикацию
	ConfirmDelivery bool

	Logger rabbitmq_common.Logger
}

func (cfg PublisherConfig) validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return fmt.Errorf("invalid base config: %w", err)
	}
	if cfg.DeclareExchangeIfMissing && (cfg.ExchangeName == "") != (cfg.ExchangeType == "") {
		return fmt.Errorf("producer: exchange name and type must be set together when DeclareExchangeIfMissing is true")
	}
	return nil
}

// Publisher публикует сообщения в один обменник
type Publisher struct {
	config      PublisherConfig
	connManager *rabbitmq_common.ConnectionManager

	mu      sync.Mutex
	channel *amqp.Channel

	Logger rabbitmq_common.Logger
}

// NewPublisher создает производителя на общем соединении
func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{
		config:      cfg,
		connManager: connManager,
		Logger:      logger,
	}

	if _, err := p.openChannel(); err != nil {
		return nil, err
	}

	p.Logger.Debug("Producer ready", "exchange", cfg.ExchangeName, "confirm", cfg.ConfirmDelivery)
	return p, nil
}

// openChannel вызывается под p.mu либо из конструктора
func (p *Publisher) openChannel() (*amqp.Channel, error) {
	_, ch, err := p.connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	if p.config.ConfirmDelivery {
		if err := ch.Confirm(false); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to enable confirm mode: %w", err)
		}
	}

	p.channel = ch
	return ch, nil
}

func (p *Publisher) currentChannel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	p.Logger.Warn("Producer: channel is closed, reopening", "exchange", p.config.ExchangeName)
	return p.openChannel()
}

// Publish публикует сообщение и, при ConfirmDelivery, ждет ack брокера
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	ch, err := p.currentChannel()
	if err != nil {
		return err
	}

	if !p.config.ConfirmDelivery {
		if err := ch.PublishWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg); err != nil {
			return fmt.Errorf("producer: failed to publish message: %w", err)
		}
		return nil
	}

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("producer: waiting for confirmation: %w", err)
	}
	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

// Close закрывает канал производителя, соединение принадлежит менеджеру
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Logger.Debug("Producer: Closing...")
	if p.channel == nil || p.channel.IsClosed() {
		p.channel = nil
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing channel")
		return err
	}
	p.Logger.Info("Producer closed")
	return nil
}
