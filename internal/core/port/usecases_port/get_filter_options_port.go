package usecases_port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context) (*domain.FilterOptions, error)
}
