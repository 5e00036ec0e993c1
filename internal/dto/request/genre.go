package request

type GenreRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,notblank,max=25"`
	Description string `json:"description" validate:"max=200"`
}
