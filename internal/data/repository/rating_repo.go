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

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	Update(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.Rating, error)
	FindByName(ctx context.Context, name string) (*entity.Rating, error)
	FindAll(ctx context.Context) ([]*entity.Rating, error)
}

type ratingPostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingPostgresRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingPostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingPostgresRepository) Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		INSERT INTO ratings (id, name, description)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM ratings), $1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, rating.Name, rating.Description).Scan(&rating.ID)
	if err != nil {
		r.log.Error("Failed to create rating", zap.Error(err), zap.String("name", rating.Name))
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

func (r *ratingPostgresRepository) Update(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE ratings SET name = $2, description = $3 WHERE id = $1`,
		rating.ID, rating.Name, rating.Description)
	if err != nil {
		r.log.Error("Failed to update rating", zap.Error(err), zap.Int64("rating_id", rating.ID))
		return nil, fmt.Errorf("update rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("rating with id = %d not found", rating.ID)
	}
	return rating, nil
}

func (r *ratingPostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete rating", zap.Error(err), zap.Int64("rating_id", id))
		return fmt.Errorf("delete rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("rating with id = %d not found", id)
	}
	return nil
}

func (r *ratingPostgresRepository) FindByID(ctx context.Context, id int64) (*entity.Rating, error) {
	return r.findOne(ctx, `SELECT id, name, description FROM ratings WHERE id = $1`, id)
}

func (r *ratingPostgresRepository) FindByName(ctx context.Context, name string) (*entity.Rating, error) {
	return r.findOne(ctx,
		`SELECT id, name, description FROM ratings WHERE name = $1 ORDER BY id LIMIT 1`, name)
}

func (r *ratingPostgresRepository) FindAll(ctx context.Context) ([]*entity.Rating, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM ratings ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to query ratings", zap.Error(err))
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		if err := rows.Scan(&rating.ID, &rating.Name, &rating.Description); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	return ratings, rows.Err()
}

func (r *ratingPostgresRepository) findOne(ctx context.Context, query string, arg any) (*entity.Rating, error) {
	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, arg).Scan(&rating.ID, &rating.Name, &rating.Description)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating", zap.Error(err))
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &rating, nil
}
