package response

import (
	"filmorate/internal/data/entity"
)

const dateLayout = "2006-01-02"

type FilmResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ReleaseDate string          `json:"releaseDate"`
	Duration    int64           `json:"duration"`
	Mpa         *RatingResponse `json:"mpa,omitempty"`
	Genres      []GenreResponse `json:"genres"`
	Likes       []int64         `json:"likes"`
}

// FilmToResponse builds the wire shape with the mpa and genre
// references resolved to full entities.
func FilmToResponse(film *entity.Film, mpa *entity.Rating, genres []*entity.Genre) FilmResponse {
	resp := FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate.Format(dateLayout),
		Duration:    film.Duration,
		Genres:      make([]GenreResponse, 0, len(genres)),
		Likes:       film.Likes,
	}
	if resp.Likes == nil {
		resp.Likes = []int64{}
	}
	if mpa != nil {
		m := RatingToResponse(mpa)
		resp.Mpa = &m
	}
	for _, genre := range genres {
		resp.Genres = append(resp.Genres, GenreToResponse(genre))
	}
	return resp
}
