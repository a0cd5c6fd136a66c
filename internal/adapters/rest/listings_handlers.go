package rest

import (
	"errors"
	"net/http"

	"github.com/SolaireOfAndor/Summit-sub004/internal/contextkeys"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port"
	"github.com/SolaireOfAndor/Summit-sub004/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingsHandler struct {
	filterListingsUC   usecases_port.FilterListingsUseCase
	getListingUC       usecases_port.GetListingBySlugUseCase
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase
	placeholderImage   string
}

func NewListingsHandler(
	filterListingsUC usecases_port.FilterListingsUseCase,
	getListingUC usecases_port.GetListingBySlugUseCase,
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase,
	placeholderImage string,
) *ListingsHandler {
	return &ListingsHandler{
		filterListingsUC:   filterListingsUC,
		getListingUC:       getListingUC,
		getFilterOptionsUC: getFilterOptionsUC,
		placeholderImage:   placeholderImage,
	}
}

// FilterListings обрабатывает GET /api/listings
func (h *ListingsHandler) FilterListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// в критерии попадают все параметры, неизвестные оси отсеет фильтр
	criteria := make(domain.FilterCriteria, len(query))
	for key := range query {
		if values := parseStringSlice(query, key); len(values) > 0 {
			criteria[domain.Dimension(key)] = values
		}
	}

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "FilterListings",
	})

	result, err := h.filterListingsUC.Execute(r.Context(), criteria)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve listings")
		return
	}
	if len(result.Ignored) > 0 {
		handlerLogger.Debug("Request contained unknown filter dimensions", port.Fields{"ignored": result.Ignored})
	}

	response := ListingsResponse{
		Listings: make([]ListingResponse, len(result.Listings)),
		Total:    len(result.Listings),
	}
	for i, l := range result.Listings {
		response.Listings[i] = toListingResponse(l, h.placeholderImage)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetListing обрабатывает GET /api/listings/{slug}
func (h *ListingsHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetListing",
		"slug":    slug,
	})

	listing, err := h.getListingUC.Execute(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingResponse(*listing, h.placeholderImage))
}

// GetFilterOptions обрабатывает GET /api/filters/options
func (h *ListingsHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getFilterOptionsUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Use case failed", err, port.Fields{"handler": "GetFilterOptions"})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get filter options")
		return
	}
	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(*options))
}
