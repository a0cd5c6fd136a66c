package port

import (
	"context"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
)

// ListingCatalogPort - источник неизменяемого каталога объявлений.
type ListingCatalogPort interface {
	// All возвращает каталог в исходном порядке. Вызывающий не должен менять срез.
	All(ctx context.Context) ([]domain.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Listing, error)
}
