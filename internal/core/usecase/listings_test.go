package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	listings []domain.Listing
	err      error
}

func (s stubCatalog) All(context.Context) ([]domain.Listing, error) { return s.listings, s.err }

func (s stubCatalog) FindBySlug(_ context.Context, slug string) (*domain.Listing, error) {
	for i := range s.listings {
		if s.listings[i].Slug == slug {
			return &s.listings[i], nil
		}
	}
	return nil, domain.ErrListingNotFound
}

var stubListings = []domain.Listing{
	{ID: "1", Slug: "a", Location: "Thornton, NSW", Bedrooms: 2},
	{ID: "2", Slug: "b", Location: "Maitland, NSW", Bedrooms: 3},
}

func TestFilterListingsUseCase(t *testing.T) {
	uc := NewFilterListingsUseCase(stubCatalog{listings: stubListings})

	result, err := uc.Execute(context.Background(), domain.FilterCriteria{
		domain.DimensionLocation: {"maitland"},
		"sort":                   {"price"},
	})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "b", result.Listings[0].Slug)
	assert.Equal(t, []domain.Dimension{"sort"}, result.Ignored)
}

func TestFilterListingsUseCaseCatalogError(t *testing.T) {
	boom := errors.New("catalog unavailable")
	_, err := NewFilterListingsUseCase(stubCatalog{err: boom}).Execute(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestGetListingBySlugUseCase(t *testing.T) {
	uc := NewGetListingBySlugUseCase(stubCatalog{listings: stubListings})

	listing, err := uc.Execute(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "1", listing.ID)

	_, err = uc.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestGetFilterOptionsUseCase(t *testing.T) {
	opts, err := NewGetFilterOptionsUseCase(stubCatalog{listings: stubListings}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Thornton, NSW", "Maitland, NSW"}, opts.Locations)
	assert.Equal(t, 2, opts.BedroomsMin)
	assert.Equal(t, 3, opts.BedroomsMax)
}
