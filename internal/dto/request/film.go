package request

// RatingRef and GenreRef carry only the id of the referenced entity;
// names are resolved server-side.
type RatingRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

type GenreRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// FilmRequest is the body of POST /films and PUT /films. Validation
// tags apply on creation only; updates go through the per-field merge
// in the service instead.
type FilmRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required,notblank"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate string     `json:"releaseDate" validate:"required,releasedate"`
	Duration    int64      `json:"duration" validate:"required,gt=0"`
	Mpa         *RatingRef `json:"mpa"`
	Genres      []GenreRef `json:"genres"`
}
