package usecase

import (
	"context"
	"fmt"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
)

type GetFilterOptionsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetFilterOptionsUseCase(catalog port.ListingCatalogPort) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{catalog: catalog}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetFilterOptions"})

	listings, err := uc.catalog.All(ctx)
	if err != nil {
		logger.Error("Catalog returned an error", err, nil)
		return nil, fmt.Errorf("failed to read listing catalog: %w", err)
	}

	options := domain.BuildFilterOptions(listings)
	return &options, nil
}
