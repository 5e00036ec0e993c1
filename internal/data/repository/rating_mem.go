package repository

import (
	"context"
	"sync"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type ratingMemoryRepository struct {
	mu      sync.RWMutex
	ratings map[int64]*entity.Rating
	log     *zap.Logger
}

func NewRatingMemoryRepository(log *zap.Logger) RatingRepository {
	return &ratingMemoryRepository{
		ratings: make(map[int64]*entity.Rating),
		log:     log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingMemoryRepository) Create(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rating
	stored.ID = nextID(r.ratings)
	r.ratings[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *ratingMemoryRepository) Update(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ratings[rating.ID]; !ok {
		return nil, apperr.NotFound("rating with id = %d not found", rating.ID)
	}
	stored := *rating
	r.ratings[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *ratingMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ratings[id]; !ok {
		return apperr.NotFound("rating with id = %d not found", id)
	}
	delete(r.ratings, id)
	return nil
}

func (r *ratingMemoryRepository) FindByID(_ context.Context, id int64) (*entity.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, ok := r.ratings[id]
	if !ok {
		return nil, nil
	}
	out := *rating
	return &out, nil
}

func (r *ratingMemoryRepository) FindByName(_ context.Context, name string) (*entity.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range sortedIDs(r.ratings) {
		if r.ratings[id].Name == name {
			out := *r.ratings[id]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ratingMemoryRepository) FindAll(_ context.Context) ([]*entity.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ratings := make([]*entity.Rating, 0, len(r.ratings))
	for _, id := range sortedIDs(r.ratings) {
		out := *r.ratings[id]
		ratings = append(ratings, &out)
	}
	return ratings, nil
}
