package repository

import (
	"context"
	"sync"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type genreMemoryRepository struct {
	mu     sync.RWMutex
	genres map[int64]*entity.Genre
	log    *zap.Logger
}

func NewGenreMemoryRepository(log *zap.Logger) GenreRepository {
	return &genreMemoryRepository{
		genres: make(map[int64]*entity.Genre),
		log:    log.With(zap.String("repository", "genre")),
	}
}

func (r *genreMemoryRepository) Create(_ context.Context, genre *entity.Genre) (*entity.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *genre
	stored.ID = nextID(r.genres)
	r.genres[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *genreMemoryRepository) Update(_ context.Context, genre *entity.Genre) (*entity.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.genres[genre.ID]; !ok {
		return nil, apperr.NotFound("genre with id = %d not found", genre.ID)
	}
	stored := *genre
	r.genres[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *genreMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.genres[id]; !ok {
		return apperr.NotFound("genre with id = %d not found", id)
	}
	delete(r.genres, id)
	return nil
}

func (r *genreMemoryRepository) FindByID(_ context.Context, id int64) (*entity.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	genre, ok := r.genres[id]
	if !ok {
		return nil, nil
	}
	out := *genre
	return &out, nil
}

func (r *genreMemoryRepository) FindByName(_ context.Context, name string) (*entity.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// first match in ascending id order
	for _, id := range sortedIDs(r.genres) {
		if r.genres[id].Name == name {
			out := *r.genres[id]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *genreMemoryRepository) FindAll(_ context.Context) ([]*entity.Genre, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	genres := make([]*entity.Genre, 0, len(r.genres))
	for _, id := range sortedIDs(r.genres) {
		out := *r.genres[id]
		genres = append(genres, &out)
	}
	return genres, nil
}
