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

const defaultPopularCount = 10

type FilmHandler struct {
	service usecase.FilmService
	log     *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service: service,
		log:     log.With(zap.String("handler", "film")),
	}
}

// GetFilms handles GET /films
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get films")
		return
	}
	utils.ResponseSuccess(w, "Films retrieved successfully", films)
}

// GetFilmByID handles GET /films/{id}
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	film, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get film by ID")
		return
	}
	utils.ResponseSuccess(w, "Film retrieved successfully", film)
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create film")
		return
	}
	utils.ResponseSuccess(w, "Film created successfully", film)
}

// UpdateFilm handles PUT /films, full or partial; the body must
// include the film id.
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.Update(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update film")
		return
	}
	utils.ResponseSuccess(w, "Film updated successfully", film)
}

// DeleteFilm handles DELETE /films?id=
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r.URL.Query().Get("id"), "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete film")
		return
	}
	utils.ResponseSuccess(w, "Film deleted successfully", nil)
}

// GetPopularFilms handles GET /films/popular?count=
func (h *FilmHandler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count := int64(defaultPopularCount)
	if raw := r.URL.Query().Get("count"); raw != "" {
		var ok bool
		if count, ok = pathID(w, raw, "count"); !ok {
			return
		}
	}

	films, err := h.service.GetPopular(r.Context(), int(count))
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}
	utils.ResponseSuccess(w, "Popular films retrieved successfully", films)
}

// AddLike handles PUT /films/{id}/like/{userId}
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, chi.URLParam(r, "userId"), "userId")
	if !ok {
		return
	}

	likes, err := h.service.AddLike(r.Context(), filmID, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "add like")
		return
	}
	utils.ResponseSuccess(w, "Like added successfully", likes)
}

// RemoveLike handles DELETE /films/{id}/like/{userId}
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, chi.URLParam(r, "userId"), "userId")
	if !ok {
		return
	}

	likes, err := h.service.RemoveLike(r.Context(), filmID, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove like")
		return
	}
	utils.ResponseSuccess(w, "Like removed successfully", likes)
}
