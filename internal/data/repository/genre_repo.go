package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) (*entity.Genre, error)
	Update(ctx context.Context, genre *entity.Genre) (*entity.Genre, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
	FindByName(ctx context.Context, name string) (*entity.Genre, error)
	FindAll(ctx context.Context) ([]*entity.Genre, error)
}

type genrePostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenrePostgresRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genrePostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genrePostgresRepository) Create(ctx context.Context, genre *entity.Genre) (*entity.Genre, error) {
	query := `
		INSERT INTO genres (id, name, description)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM genres), $1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, genre.Name, genre.Description).Scan(&genre.ID)
	if err != nil {
		r.log.Error("Failed to create genre", zap.Error(err), zap.String("name", genre.Name))
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

func (r *genrePostgresRepository) Update(ctx context.Context, genre *entity.Genre) (*entity.Genre, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE genres SET name = $2, description = $3 WHERE id = $1`,
		genre.ID, genre.Name, genre.Description)
	if err != nil {
		r.log.Error("Failed to update genre", zap.Error(err), zap.Int64("genre_id", genre.ID))
		return nil, fmt.Errorf("update genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("genre with id = %d not found", genre.ID)
	}
	return genre, nil
}

func (r *genrePostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete genre", zap.Error(err), zap.Int64("genre_id", id))
		return fmt.Errorf("delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("genre with id = %d not found", id)
	}
	return nil
}

func (r *genrePostgresRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	return r.findOne(ctx, `SELECT id, name, description FROM genres WHERE id = $1`, id)
}

func (r *genrePostgresRepository) FindByName(ctx context.Context, name string) (*entity.Genre, error) {
	return r.findOne(ctx,
		`SELECT id, name, description FROM genres WHERE name = $1 ORDER BY id LIMIT 1`, name)
}

func (r *genrePostgresRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM genres ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err))
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}
	return genres, rows.Err()
}

func (r *genrePostgresRepository) findOne(ctx context.Context, query string, arg any) (*entity.Genre, error) {
	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, arg).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre", zap.Error(err))
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return &genre, nil
}
