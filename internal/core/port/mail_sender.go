package port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

// MailSenderPort - внешняя возможность отправки писем.
// Повторные попытки - забота самого провайдера, адаптер делает ровно одну.
type MailSenderPort interface {
	// Configured сообщает, есть ли у адаптера учетные данные провайдера.
	Configured() bool
	// Send возвращает *domain.ProviderError, если провайдер вернул ошибку.
	Send(ctx context.Context, msg domain.NotificationMessage) error
}
