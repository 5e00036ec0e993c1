package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

// filmMemoryRepository keeps films in a plain map guarded by one lock.
// Id allocation, lookups and like-set mutation all happen under it, so
// read-modify-write sequences stay atomic.
type filmMemoryRepository struct {
	mu    sync.RWMutex
	films map[int64]*entity.Film
	log   *zap.Logger
}

func NewFilmMemoryRepository(log *zap.Logger) FilmRepository {
	return &filmMemoryRepository{
		films: make(map[int64]*entity.Film),
		log:   log.With(zap.String("repository", "film")),
	}
}

func (r *filmMemoryRepository) Create(_ context.Context, film *entity.Film) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneFilm(film)
	stored.ID = nextID(r.films)
	r.films[stored.ID] = stored

	r.log.Debug("Film stored", zap.Int64("film_id", stored.ID), zap.String("name", stored.Name))
	return cloneFilm(stored), nil
}

func (r *filmMemoryRepository) Update(_ context.Context, film *entity.Film) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.films[film.ID]
	if !ok {
		return nil, apperr.NotFound("film with id = %d not found", film.ID)
	}

	stored := cloneFilm(film)
	stored.Likes = cloneIDs(old.Likes) // likes are managed via their own endpoints
	r.films[stored.ID] = stored
	return cloneFilm(stored), nil
}

func (r *filmMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[id]; !ok {
		return apperr.NotFound("film with id = %d not found", id)
	}
	delete(r.films, id)
	return nil
}

func (r *filmMemoryRepository) FindByID(_ context.Context, id int64) (*entity.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	film, ok := r.films[id]
	if !ok {
		return nil, nil
	}
	return cloneFilm(film), nil
}

func (r *filmMemoryRepository) FindAll(_ context.Context) ([]*entity.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]*entity.Film, 0, len(r.films))
	for _, id := range sortedIDs(r.films) {
		films = append(films, cloneFilm(r.films[id]))
	}
	return films, nil
}

func (r *filmMemoryRepository) FindPopular(_ context.Context, count int) ([]*entity.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]*entity.Film, 0, len(r.films))
	for _, id := range sortedIDs(r.films) {
		films = append(films, cloneFilm(r.films[id]))
	}
	sort.SliceStable(films, func(i, j int) bool {
		return len(films[i].Likes) > len(films[j].Likes)
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (r *filmMemoryRepository) AddLike(_ context.Context, filmID, userID int64) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	film, ok := r.films[filmID]
	if !ok {
		return nil, apperr.NotFound("film with id = %d not found", filmID)
	}
	film.Likes = insertSorted(film.Likes, userID)
	return cloneFilm(film), nil
}

func (r *filmMemoryRepository) RemoveLike(_ context.Context, filmID, userID int64) (*entity.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	film, ok := r.films[filmID]
	if !ok {
		return nil, apperr.NotFound("film with id = %d not found", filmID)
	}
	film.Likes = removeSorted(film.Likes, userID)
	return cloneFilm(film), nil
}

func cloneFilm(film *entity.Film) *entity.Film {
	out := *film
	out.GenreIDs = cloneIDs(film.GenreIDs)
	out.Likes = cloneIDs(film.Likes)
	return &out
}
