package usecases_port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

type FilterListingsUseCase interface {
	Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.FilterResult, error)
}
