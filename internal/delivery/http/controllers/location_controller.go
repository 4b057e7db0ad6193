package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"serraturismo/internal/delivery/http/helpers"
	"serraturismo/internal/domain"
)

// LocationController serves the static points-of-interest dataset.
type LocationController struct {
	Logger  *slog.Logger
	Fetcher domain.LocationFetcher
}

func NewLocationController(logger *slog.Logger, fetcher domain.LocationFetcher) *LocationController {
	return &LocationController{Logger: logger, Fetcher: fetcher}
}

// ListLocations godoc
// @Summary List points of interest
// @Description Serves the published locations dataset, optionally filtered by name substring (case-insensitive) and exact category.
// @Tags locations
// @Produce json
// @Param search query string false "Name substring"
// @Param categoria query string false "Exact category"
// @Success 200 {object} helpers.APIResponse "data contains the locations"
// @Failure 502 {object} helpers.APIResponse "error.code: internal_error (dataset unavailable)"
// @Router /locations [get]
func (c *LocationController) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.Fetcher.Fetch(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeInternalError, "locations dataset unavailable")
		return
	}

	q := r.URL.Query()
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	categoria := q.Get("categoria")

	filtered := make([]domain.Location, 0, len(locations))
	for _, loc := range locations {
		if search != "" && !strings.Contains(strings.ToLower(loc.Nome), search) {
			continue
		}
		if categoria != "" && loc.Categoria != categoria {
			continue
		}
		filtered = append(filtered, loc)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, filtered)
}
