package repository

import (
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Film   FilmRepository
	User   UserRepository
	Genre  GenreRepository
	Rating RatingRepository
}

// NewMemoryRepository builds the in-process map-backed storage. This is
// the default backend.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Film:   NewFilmMemoryRepository(log),
		User:   NewUserMemoryRepository(log),
		Genre:  NewGenreMemoryRepository(log),
		Rating: NewRatingMemoryRepository(log),
	}
}

// NewPostgresRepository builds the pgx-backed storage, selected with
// STORAGE_DRIVER=postgres.
func NewPostgresRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Film:   NewFilmPostgresRepository(db, log),
		User:   NewUserPostgresRepository(db, log),
		Genre:  NewGenrePostgresRepository(db, log),
		Rating: NewRatingPostgresRepository(db, log),
	}
}
