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

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// GetRatings handles GET /mpa; with ?name= it returns the first rating
// with that exact name.
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		rating, err := h.service.GetByName(r.Context(), name)
		if err != nil {
			handleServiceError(w, h.log, err, "get rating by name")
			return
		}
		utils.ResponseSuccess(w, "Rating retrieved successfully", rating)
		return
	}

	ratings, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get ratings")
		return
	}
	utils.ResponseSuccess(w, "Ratings retrieved successfully", ratings)
}

// GetRatingByID handles GET /mpa/{id}
func (h *RatingHandler) GetRatingByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	rating, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get rating by ID")
		return
	}
	utils.ResponseSuccess(w, "Rating retrieved successfully", rating)
}

// CreateRating handles POST /mpa
func (h *RatingHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	var req request.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rating, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create rating")
		return
	}
	utils.ResponseSuccess(w, "Rating created successfully", rating)
}

// UpdateRating handles PUT /mpa
func (h *RatingHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	var req request.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rating, err := h.service.Update(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update rating")
		return
	}
	utils.ResponseSuccess(w, "Rating updated successfully", rating)
}

// DeleteRating handles DELETE /mpa?id=
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r.URL.Query().Get("id"), "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete rating")
		return
	}
	utils.ResponseSuccess(w, "Rating deleted successfully", nil)
}
