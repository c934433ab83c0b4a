package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/satyamjaihind1/weather-tourism/internal/api/models"
	"github.com/satyamjaihind1/weather-tourism/internal/api/response"
	"github.com/satyamjaihind1/weather-tourism/internal/favorites"
)

// FavoritesHandler handles the saved-locations endpoints.
type FavoritesHandler struct {
	service *favorites.Service
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(service *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{service: service}
}

// addFavoriteRequest is the POST /v1/favorites request body.
type addFavoriteRequest struct {
	Name string `json:"name"`
}

// ListFavorites handles GET /v1/favorites.
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.listView())
}

// AddFavorite handles POST /v1/favorites. Adding an already saved name is
// a no-op and still returns the current list.
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	if err := h.service.Add(r.Context(), req.Name); err != nil {
		if errors.Is(err, favorites.ErrEmptyName) {
			response.BadRequest(w, r, "name must not be empty", []models.FieldError{
				{Field: "name", Message: "required", Code: "required"},
			})
			return
		}
		response.InternalError(w, r, "failed to save favorite")
		return
	}

	response.JSON(w, r, http.StatusOK, h.listView())
}

// RemoveFavorite handles DELETE /v1/favorites/{name}. Removing an absent
// name is a no-op.
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	if err := h.service.Remove(r.Context(), name); err != nil {
		response.InternalError(w, r, "failed to remove favorite")
		return
	}

	response.JSON(w, r, http.StatusOK, h.listView())
}

func (h *FavoritesHandler) listView() models.FavoritesView {
	return models.FavoritesView{
		SchemaVersion: favorites.SchemaVersion,
		Names:         h.service.List(),
	}
}
