package entity

// Rating is an MPA age classification referenced by films.
type Rating struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}
