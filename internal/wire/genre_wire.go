package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Route("/genres", func(r chi.Router) {
		r.Get("/", genreHandler.GetGenres)
		r.Post("/", genreHandler.CreateGenre)
		r.Put("/", genreHandler.UpdateGenre)
		r.Delete("/", genreHandler.DeleteGenre) // DELETE /genres?id=
		r.Get("/{id}", genreHandler.GetGenreByID)
	})
}
