package usecase

import (
	"context"
	"fmt"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
)

type FilterListingsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewFilterListingsUseCase(catalog port.ListingCatalogPort) *FilterListingsUseCase {
	return &FilterListingsUseCase{catalog: catalog}
}

func (uc *FilterListingsUseCase) Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.FilterResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FilterListings",
		"criteria": criteria,
	})
	ucLogger.Debug("Use case started", nil)

	listings, err := uc.catalog.All(ctx)
	if err != nil {
		ucLogger.Error("Catalog returned an error", err, nil)
		return nil, fmt.Errorf("failed to read listing catalog: %w", err)
	}

	result := domain.Filter(listings, criteria)
	if len(result.Ignored) > 0 {
		ucLogger.Debug("Unknown filter dimensions ignored", port.Fields{"ignored": result.Ignored})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"catalog_size": len(listings),
		"total_found":  len(result.Listings),
	})
	return &result, nil
}
