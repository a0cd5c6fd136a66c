package usecases_port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

// SubmitFormUseCase принимает форму любого типа и возвращает одну из ошибок
// domain.ValidationError, ConfigurationError, DeliveryError, UnexpectedError.
type SubmitFormUseCase interface {
	Execute(ctx context.Context, submission domain.FormSubmission) error
}
