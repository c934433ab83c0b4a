package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/satyamjaihind1/weather-tourism/internal/api/models"
	"github.com/satyamjaihind1/weather-tourism/internal/api/response"
	"github.com/satyamjaihind1/weather-tourism/internal/location"
	"github.com/satyamjaihind1/weather-tourism/internal/snapshot"
)

// SnapshotHandler handles the aggregation endpoint.
type SnapshotHandler struct {
	service  *snapshot.Service
	resolver *location.Resolver
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(service *snapshot.Service) *SnapshotHandler {
	return &SnapshotHandler{
		service:  service,
		resolver: location.NewResolver(nil),
	}
}

// GetSnapshot handles GET /v1/snapshot?city= or ?lat=&lon=.
// Input validation happens before any provider is contacted; per-source
// failures afterwards surface inside the snapshot sections, never as an
// HTTP error.
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	key, fieldErrs := h.resolveLocation(r)
	if fieldErrs != nil {
		response.BadRequest(w, r, "invalid location query", fieldErrs)
		return
	}

	snap := h.service.Aggregate(r.Context(), key)
	response.JSON(w, r, http.StatusOK, models.NewSnapshotView(snap))
}

// resolveLocation builds the location key from query parameters.
// An explicit lat/lon pair wins over a city parameter.
func (h *SnapshotHandler) resolveLocation(r *http.Request) (location.Key, []models.FieldError) {
	q := r.URL.Query()

	latText, lonText := q.Get("lat"), q.Get("lon")
	if latText != "" || lonText != "" {
		lat, latErr := strconv.ParseFloat(latText, 64)
		lon, lonErr := strconv.ParseFloat(lonText, 64)
		if latErr != nil || lonErr != nil {
			return location.Key{}, []models.FieldError{
				{Field: "lat", Message: "lat and lon must both be decimal degrees", Code: "invalid_coordinates"},
			}
		}

		res, err := h.resolver.FromCoords(lat, lon)
		if err != nil {
			return location.Key{}, []models.FieldError{
				{Field: "lat", Message: err.Error(), Code: "invalid_coordinates"},
			}
		}
		return res.Key, nil
	}

	res, err := h.resolver.FromText(q.Get("city"))
	if err != nil {
		if errors.Is(err, location.ErrEmptyInput) {
			return location.Key{}, []models.FieldError{
				{Field: "city", Message: err.Error(), Code: "empty_input"},
			}
		}
		return location.Key{}, []models.FieldError{
			{Field: "city", Message: err.Error(), Code: "invalid_city"},
		}
	}
	return res.Key, nil
}
