package rabbitmq

import (
	"time"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

// MailOutboxDTO сообщение в очереди почтового outbox; его забирает
// отдельный отправитель писем.
type MailOutboxDTO struct {
	MessageID string                     `json:"message_id"`
	TraceID   string                     `json:"trace_id,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
	Message   domain.NotificationMessage `json:"message"`
}
