package usecases_port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

// RelayMailUseCase доставляет письмо, взятое из почтового outbox.
type RelayMailUseCase interface {
	Execute(ctx context.Context, msg domain.NotificationMessage) error
}
