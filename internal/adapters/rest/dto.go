package rest

import "github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type FeatureResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ListingResponse карточка объявления. Пустой Images заменяется заглушкой.
type ListingResponse struct {
	ID                string            `json:"id"`
	Slug              string            `json:"slug"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Location          string            `json:"location"`
	Categories        []string          `json:"categories"`
	Features          []FeatureResponse `json:"features"`
	Bedrooms          int               `json:"bedrooms"`
	Bathrooms         int               `json:"bathrooms"`
	AvailableBedrooms int               `json:"availableBedrooms"`
	Images            []string          `json:"images"`
}

type ListingsResponse struct {
	Listings []ListingResponse `json:"listings"`
	Total    int               `json:"total"`
}

type RangeResponse struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type FilterOptionsResponse struct {
	Locations        []string      `json:"locations"`
	Categories       []string      `json:"categories"`
	BuildingTypes    []string      `json:"buildingTypes"`
	DesignCategories []string      `json:"designCategories"`
	Bedrooms         RangeResponse `json:"bedrooms"`
	Total            int           `json:"total"`
}

func toListingResponse(l domain.Listing, placeholderImage string) ListingResponse {
	features := make([]FeatureResponse, len(l.Features))
	for i, f := range l.Features {
		features[i] = FeatureResponse{Label: f.Label, Value: f.Value}
	}

	images := l.Images
	if len(images) == 0 && placeholderImage != "" {
		images = []string{placeholderImage}
	}
	if images == nil {
		images = []string{}
	}

	categories := l.Categories
	if categories == nil {
		categories = []string{}
	}

	return ListingResponse{
		ID:                l.ID,
		Slug:              l.Slug,
		Title:             l.Title,
		Description:       l.Description,
		Location:          l.Location,
		Categories:        categories,
		Features:          features,
		Bedrooms:          l.Bedrooms,
		Bathrooms:         l.Bathrooms,
		AvailableBedrooms: l.AvailableBedrooms,
		Images:            images,
	}
}

func toFilterOptionsResponse(opts domain.FilterOptions) FilterOptionsResponse {
	return FilterOptionsResponse{
		Locations:        nonNil(opts.Locations),
		Categories:       nonNil(opts.Categories),
		BuildingTypes:    nonNil(opts.BuildingTypes),
		DesignCategories: nonNil(opts.DesignCategories),
		Bedrooms:         RangeResponse{Min: opts.BedroomsMin, Max: opts.BedroomsMax},
		Total:            opts.Total,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
