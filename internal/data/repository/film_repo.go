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

type FilmRepository interface {
	Create(ctx context.Context, film *entity.Film) (*entity.Film, error)
	Update(ctx context.Context, film *entity.Film) (*entity.Film, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)

	// FindPopular returns films ordered by descending like count, ties
	// broken by ascending film id, at most count entries.
	FindPopular(ctx context.Context, count int) ([]*entity.Film, error)

	// AddLike / RemoveLike mutate the film's like set and return the
	// film as stored after the mutation.
	AddLike(ctx context.Context, filmID, userID int64) (*entity.Film, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (*entity.Film, error)
}

type filmPostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmPostgresRepository(db database.PgxIface, log *zap.Logger) FilmRepository {
	return &filmPostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func (r *filmPostgresRepository) Create(ctx context.Context, film *entity.Film) (*entity.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create film: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO films (id, name, description, release_date, duration, mpa_id)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM films), $1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		nullableID(film.MpaID),
	).Scan(&film.ID)
	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return nil, fmt.Errorf("create film: %w", err)
	}

	for _, genreID := range film.GenreIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			film.ID, genreID)
		if err != nil {
			return nil, fmt.Errorf("attach genre: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create film: %w", err)
	}

	return film, nil
}

func (r *filmPostgresRepository) Update(ctx context.Context, film *entity.Film) (*entity.Film, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update film: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE id = $1
	`,
		film.ID,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		nullableID(film.MpaID),
	)
	if err != nil {
		r.log.Error("Failed to update film",
			zap.Error(err),
			zap.Int64("film_id", film.ID),
		)
		return nil, fmt.Errorf("update film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("film with id = %d not found", film.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
		return nil, fmt.Errorf("detach genres: %w", err)
	}
	for _, genreID := range film.GenreIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			film.ID, genreID)
		if err != nil {
			return nil, fmt.Errorf("attach genre: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update film: %w", err)
	}

	return r.FindByID(ctx, film.ID)
}

func (r *filmPostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete film",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return fmt.Errorf("delete film: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("film with id = %d not found", id)
	}
	return nil
}

func (r *filmPostgresRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	query := `
		SELECT id, name, description, release_date, duration, mpa_id
		FROM films
		WHERE id = $1
	`

	var film entity.Film
	var mpaID *int64
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
		&mpaID,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return nil, fmt.Errorf("find film by id: %w", err)
	}
	if mpaID != nil {
		film.MpaID = *mpaID
	}

	if err := r.loadRelations(ctx, &film); err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *filmPostgresRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	return r.findMany(ctx, `
		SELECT id, name, description, release_date, duration, mpa_id
		FROM films
		ORDER BY id
	`)
}

func (r *filmPostgresRepository) FindPopular(ctx context.Context, count int) ([]*entity.Film, error) {
	return r.findMany(ctx, `
		SELECT f.id, f.name, f.description, f.release_date, f.duration, f.mpa_id
		FROM films f
		LEFT JOIN film_likes l ON l.film_id = f.id
		GROUP BY f.id
		ORDER BY COUNT(l.user_id) DESC, f.id
		LIMIT $1
	`, count)
}

func (r *filmPostgresRepository) AddLike(ctx context.Context, filmID, userID int64) (*entity.Film, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO film_likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		filmID, userID)
	if err != nil {
		r.log.Error("Failed to add like",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("add like: %w", err)
	}
	return r.requireByID(ctx, filmID)
}

func (r *filmPostgresRepository) RemoveLike(ctx context.Context, filmID, userID int64) (*entity.Film, error) {
	_, err := r.db.Exec(ctx,
		`DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2`,
		filmID, userID)
	if err != nil {
		r.log.Error("Failed to remove like",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("remove like: %w", err)
	}
	return r.requireByID(ctx, filmID)
}

func (r *filmPostgresRepository) requireByID(ctx context.Context, id int64) (*entity.Film, error) {
	film, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if film == nil {
		return nil, apperr.NotFound("film with id = %d not found", id)
	}
	return film, nil
}

func (r *filmPostgresRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Film, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query films", zap.Error(err))
		return nil, fmt.Errorf("query films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		var film entity.Film
		var mpaID *int64
		err := rows.Scan(
			&film.ID,
			&film.Name,
			&film.Description,
			&film.ReleaseDate,
			&film.Duration,
			&mpaID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		if mpaID != nil {
			film.MpaID = *mpaID
		}
		films = append(films, &film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film rows: %w", err)
	}

	for _, film := range films {
		if err := r.loadRelations(ctx, film); err != nil {
			return nil, err
		}
	}
	return films, nil
}

func (r *filmPostgresRepository) loadRelations(ctx context.Context, film *entity.Film) error {
	genreIDs, err := r.loadIDs(ctx,
		`SELECT genre_id FROM film_genres WHERE film_id = $1 ORDER BY genre_id`, film.ID)
	if err != nil {
		return fmt.Errorf("load film genres: %w", err)
	}
	film.GenreIDs = genreIDs

	likes, err := r.loadIDs(ctx,
		`SELECT user_id FROM film_likes WHERE film_id = $1 ORDER BY user_id`, film.ID)
	if err != nil {
		return fmt.Errorf("load film likes: %w", err)
	}
	film.Likes = likes
	return nil
}

func (r *filmPostgresRepository) loadIDs(ctx context.Context, query string, arg int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// nullableID maps the zero id to SQL NULL.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
