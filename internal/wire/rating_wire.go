package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRating(r chi.Router, ratingHandler *adaptor.RatingHandler) {
	r.Route("/mpa", func(r chi.Router) {
		r.Get("/", ratingHandler.GetRatings)
		r.Post("/", ratingHandler.CreateRating)
		r.Put("/", ratingHandler.UpdateRating)
		r.Delete("/", ratingHandler.DeleteRating) // DELETE /mpa?id=
		r.Get("/{id}", ratingHandler.GetRatingByID)
	})
}
