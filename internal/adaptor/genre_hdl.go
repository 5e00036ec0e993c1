package adaptor

import (
	"encoding/json"
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GetGenres handles GET /genres; with ?name= it returns the first
// genre with that exact name.
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		genre, err := h.service.GetByName(r.Context(), name)
		if err != nil {
			handleServiceError(w, h.log, err, "get genre by name")
			return
		}
		utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
		return
	}

	genres, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}
	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// GetGenreByID handles GET /genres/{id}
func (h *GenreHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	genre, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre by ID")
		return
	}
	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

// CreateGenre handles POST /genres
func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	genre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}
	utils.ResponseSuccess(w, "Genre created successfully", genre)
}

// UpdateGenre handles PUT /genres
func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	genre, err := h.service.Update(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update genre")
		return
	}
	utils.ResponseSuccess(w, "Genre updated successfully", genre)
}

// DeleteGenre handles DELETE /genres?id=
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r.URL.Query().Get("id"), "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}
	utils.ResponseSuccess(w, "Genre deleted successfully", nil)
}
