package usecases_port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

type GetListingBySlugUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.Listing, error)
}
