package request

type RatingRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description"`
}
