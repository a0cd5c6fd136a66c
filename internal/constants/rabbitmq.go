package constants

// Обменник и ключи маршрутизации почтового outbox
const (
	MailExchange     = "mail_exchange"
	MailExchangeType = "direct"

	RoutingKeyMailOutbox = "mail.outbox"
)

// Значения MAIL_TRANSPORT
const (
	MailTransportResend = "resend"
	MailTransportAMQP   = "amqp"
)

// Очереди mail-relay
const (
	QueueMailOutbox        = "mail_outbox_queue"
	MailDeadLetterExchange = "mail_dlx"
	MailDeadLetterQueue    = "mail_outbox_dlq"
)
