package response

import "filmorate/internal/data/entity"

type RatingResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func RatingToResponse(rating *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:          rating.ID,
		Name:        rating.Name,
		Description: rating.Description,
	}
}

func RatingsToResponse(ratings []*entity.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		out = append(out, RatingToResponse(rating))
	}
	return out
}
