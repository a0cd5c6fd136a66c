package rabbitmq_consumer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SolaireOfAndor/Summit-sub004/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. nil означает ack, ошибка
// означает nack без requeue (сообщение уходит в dead-letter обменник, если он задан).
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// ConsumerConfig конфигурация потребителя
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName    string
	DurableQueue bool
	QueueArgs    amqp.Table

	// обменник, к которому привязывается очередь; пустое имя - без привязки
	ExchangeName string
	ExchangeType string
	RoutingKey   string

	// куда уходят отклоненные сообщения; пустое имя - сообщения отбрасываются
	DeadLetterExchange string
	DeadLetterQueue    string

	// 0 - без ограничений; это же число ограничивает параллельные обработчики
	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

func (cfg ConsumerConfig) validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return fmt.Errorf("consumer: invalid base config: %w", err)
	}
	if cfg.QueueName == "" {
		return fmt.Errorf("consumer: queue name is required")
	}
	if cfg.ExchangeName != "" && cfg.ExchangeType == "" {
		return fmt.Errorf("consumer: exchange type is required when exchange name is set")
	}
	if (cfg.DeadLetterExchange == "") != (cfg.DeadLetterQueue == "") {
		return fmt.Errorf("consumer: dead-letter exchange and queue must be set together")
	}
	return nil
}

// Consumer читает очередь и передает сообщения обработчику
type Consumer struct {
	config     ConsumerConfig
	handler    MessageHandler
	connection *amqp.Connection
	channel    *amqp.Channel
	wg         sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// NewConsumer объявляет топологию (обменник, очередь, DLX/DLQ) и готовит канал
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	if connManager == nil {
		return nil, fmt.Errorf("consumer: connection manager cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &Consumer{
		config:     cfg,
		handler:    handler,
		connection: conn,
		channel:    ch,
		Logger:     logger,
	}

	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}
	return c, nil
}

func (c *Consumer) setup() error {
	cfg := c.config

	if cfg.PrefetchCount > 0 {
		c.Logger.Debug("Setting QoS", "prefetch_count", cfg.PrefetchCount)
		if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	queueArgs := amqp.Table{}
	for k, v := range cfg.QueueArgs {
		queueArgs[k] = v
	}

	if cfg.DeadLetterExchange != "" {
		c.Logger.Debug("Declaring dead-letter exchange and queue",
			"exchange", cfg.DeadLetterExchange, "queue", cfg.DeadLetterQueue)
		if err := c.channel.ExchangeDeclare(cfg.DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare dead-letter exchange '%s': %w", cfg.DeadLetterExchange, err)
		}
		if _, err := c.channel.QueueDeclare(cfg.DeadLetterQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare dead-letter queue '%s': %w", cfg.DeadLetterQueue, err)
		}
		if err := c.channel.QueueBind(cfg.DeadLetterQueue, "", cfg.DeadLetterExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind dead-letter queue: %w", err)
		}
		queueArgs["x-dead-letter-exchange"] = cfg.DeadLetterExchange
	}

	if cfg.ExchangeName != "" {
		c.Logger.Debug("Declaring exchange", "name", cfg.ExchangeName, "type", cfg.ExchangeType)
		if err := c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange '%s': %w", cfg.ExchangeName, err)
		}
	}

	c.Logger.Debug("Declaring queue", "name", cfg.QueueName, "durable", cfg.DurableQueue)
	if _, err := c.channel.QueueDeclare(cfg.QueueName, cfg.DurableQueue, false, false, false, queueArgs); err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", cfg.QueueName, err)
	}

	if cfg.ExchangeName != "" {
		c.Logger.Debug("Binding queue to exchange",
			"queue", cfg.QueueName, "exchange", cfg.ExchangeName, "routing_key", cfg.RoutingKey)
		if err := c.channel.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", cfg.QueueName, cfg.ExchangeName, err)
		}
	}

	c.Logger.Debug("Setup complete", "queue", cfg.QueueName)
	return nil
}

// StartConsuming блокируется до отмены ctx или закрытия соединения.
// Отмена ctx - штатное завершение, возвращается nil.
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return fmt.Errorf("consumer: not connected")
	}

	msgs, err := c.channel.Consume(c.config.QueueName, c.config.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumer %s: failed to register on queue '%s': %w", c.config.ConsumerTag, c.config.QueueName, err)
	}
	c.Logger.Info("Waiting for messages", "queue", c.config.QueueName)

	notifyClose := c.connection.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Context cancelled, stopping consumer", "consumer_tag", c.config.ConsumerTag)
			return nil

		case amqpErr, ok := <-notifyClose:
			if !ok || amqpErr == nil {
				return errors.New("consumer: connection closed")
			}
			c.Logger.Error(amqpErr, "Connection closed for consumer", "consumer_tag", c.config.ConsumerTag)
			return amqpErr

		case d, ok := <-msgs:
			if !ok {
				c.Logger.Warn("Deliveries channel closed", "consumer_tag", c.config.ConsumerTag)
				return errors.New("consumer: deliveries channel closed")
			}
			c.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.wg.Done()
				// начатое сообщение дорабатывается и после отмены ctx
				c.process(context.WithoutCancel(ctx), delivery)
			}(d)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	err := c.safeHandle(ctx, d)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			c.Logger.Error(ackErr, "Failed to ack message", "delivery_tag", d.DeliveryTag)
		}
		return
	}

	c.Logger.Error(err, "Handler failed, rejecting message",
		"delivery_tag", d.DeliveryTag,
		"message_id", d.MessageId,
		"dead_letter_exchange", c.config.DeadLetterExchange,
	)
	if nackErr := d.Nack(false, false); nackErr != nil {
		c.Logger.Error(nackErr, "Failed to nack message", "delivery_tag", d.DeliveryTag)
	}
}

func (c *Consumer) safeHandle(ctx context.Context, d amqp.Delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("consumer: handler panicked: %v", r)
		}
	}()
	return c.handler(ctx, d)
}

// Close ждет текущие обработчики и закрывает канал
func (c *Consumer) Close() error {
	c.Logger.Debug("Waiting for message handlers to finish...")
	c.wg.Wait()

	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		c.Logger.Error(err, "Error closing channel")
		return err
	}
	c.Logger.Info("Consumer closed")
	return nil
}
