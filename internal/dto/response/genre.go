package response

import "filmorate/internal/data/entity"

type GenreResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:          genre.ID,
		Name:        genre.Name,
		Description: genre.Description,
	}
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, GenreToResponse(genre))
	}
	return out
}
