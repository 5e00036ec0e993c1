package entity

import (
	"time"
)

type Film struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Duration    int64     `db:"duration"` // minutes

	// MpaID is 0 when the film has no MPA classification.
	MpaID int64 `db:"mpa_id"`

	GenreIDs []int64

	// Likes holds the ids of users who liked the film, ascending.
	Likes []int64
}

func (f *Film) HasLike(userID int64) bool {
	for _, id := range f.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
