package usecase

import (
	"context"
	"errors"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
)

type GetListingBySlugUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetListingBySlugUseCase(catalog port.ListingCatalogPort) *GetListingBySlugUseCase {
	return &GetListingBySlugUseCase{catalog: catalog}
}

func (uc *GetListingBySlugUseCase) Execute(ctx context.Context, slug string) (*domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetListingBySlug",
		"slug":     slug,
	})

	listing, err := uc.catalog.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			ucLogger.Debug("Listing not found", nil)
		} else {
			ucLogger.Error("Catalog returned an error", err, nil)
		}
		return nil, err
	}
	return listing, nil
}
