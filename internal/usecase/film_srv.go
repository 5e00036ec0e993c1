package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

type FilmService interface {
	GetAll(ctx context.Context) ([]response.FilmResponse, error)
	GetByID(ctx context.Context, id int64) (*response.FilmResponse, error)
	Create(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	Update(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	Delete(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) ([]response.UserResponse, error)
	RemoveLike(ctx context.Context, filmID, userID int64) ([]response.UserResponse, error)
	GetPopular(ctx context.Context, count int) ([]response.FilmResponse, error)
}

type filmService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmService(repo *repository.Repository, log *zap.Logger) FilmService {
	return &filmService{
		repo: repo,
		log:  log.With(zap.String("service", "film")),
	}
}

func (s *filmService) GetAll(ctx context.Context) ([]response.FilmResponse, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get films", zap.Error(err))
		return nil, fmt.Errorf("get films: %w", err)
	}
	return s.toResponses(ctx, films)
}

func (s *filmService) GetByID(ctx context.Context, id int64) (*response.FilmResponse, error) {
	film, err := s.repo.Film.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get film by ID", zap.Error(err), zap.Int64("film_id", id))
		return nil, fmt.Errorf("get film by id: %w", err)
	}
	if film == nil {
		return nil, apperr.NotFound("film with id = %d not found", id)
	}
	resp, err := s.toResponse(ctx, film)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create applies all-or-nothing validation: any invalid field rejects
// the whole request. Updates are merged field by field instead, see
// Update.
func (s *filmService) Create(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create film validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse(utils.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, apperr.Validation("invalid release date: %s", req.ReleaseDate)
	}

	film := &entity.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
	}

	if req.Mpa != nil {
		if err := s.checkRating(ctx, req.Mpa.ID); err != nil {
			return nil, err
		}
		film.MpaID = req.Mpa.ID
	}
	genreIDs, err := s.checkGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}
	film.GenreIDs = genreIDs

	film, err = s.repo.Film.Create(ctx, film)
	if err != nil {
		return nil, fmt.Errorf("create film: %w", err)
	}

	s.log.Info("Film created", zap.Int64("film_id", film.ID), zap.String("name", film.Name))
	resp, err := s.toResponse(ctx, film)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update merges the request into the stored film field by field: a
// field that is absent or fails its own check keeps the stored value
// without raising an error. Only a missing or unknown id is an error.
func (s *filmService) Update(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	if req.ID == 0 {
		return nil, apperr.NotFound("film id must be specified")
	}

	old, err := s.repo.Film.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("load film: %w", err)
	}
	if old == nil {
		return nil, apperr.NotFound("film with id = %d not found", req.ID)
	}

	merged := *old

	if strings.TrimSpace(req.Name) != "" {
		merged.Name = req.Name
	}
	if req.Description != "" && utf8.RuneCountInString(req.Description) <= 200 {
		merged.Description = req.Description
	}
	if req.ReleaseDate != "" {
		if date, err := time.Parse(utils.DateLayout, req.ReleaseDate); err == nil && !date.Before(earliestReleaseDate) {
			merged.ReleaseDate = date
		}
	}
	if req.Duration > 0 {
		merged.Duration = req.Duration
	}
	if req.Mpa != nil {
		if err := s.checkRating(ctx, req.Mpa.ID); err != nil {
			return nil, err
		}
		merged.MpaID = req.Mpa.ID
	}
	if req.Genres != nil {
		genreIDs, err := s.checkGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		merged.GenreIDs = genreIDs
	}

	film, err := s.repo.Film.Update(ctx, &merged)
	if err != nil {
		return nil, fmt.Errorf("update film: %w", err)
	}

	s.log.Info("Film updated", zap.Int64("film_id", film.ID))
	resp, err := s.toResponse(ctx, film)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *filmService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Film.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	s.log.Info("Film deleted", zap.Int64("film_id", id))
	return nil
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int64) ([]response.UserResponse, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	film, err := s.repo.Film.AddLike(ctx, filmID, userID)
	if err != nil {
		return nil, fmt.Errorf("add like: %w", err)
	}
	s.log.Info("Like added", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return s.resolveUsers(ctx, film.Likes)
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int64) ([]response.UserResponse, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	film, err := s.repo.Film.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return nil, fmt.Errorf("remove like: %w", err)
	}
	s.log.Info("Like removed", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return s.resolveUsers(ctx, film.Likes)
}

func (s *filmService) GetPopular(ctx context.Context, count int) ([]response.FilmResponse, error) {
	if count <= 0 {
		return nil, apperr.Validation("count must be a positive number, got %d", count)
	}
	films, err := s.repo.Film.FindPopular(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("get popular films: %w", err)
	}
	return s.toResponses(ctx, films)
}

func (s *filmService) checkRating(ctx context.Context, id int64) error {
	rating, err := s.repo.Rating.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check rating: %w", err)
	}
	if rating == nil {
		return apperr.NotFound("rating with id = %d not found", id)
	}
	return nil
}

func (s *filmService) checkGenres(ctx context.Context, refs []request.GenreRef) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		genre, err := s.repo.Genre.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("check genre: %w", err)
		}
		if genre == nil {
			return nil, apperr.NotFound("genre with id = %d not found", ref.ID)
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (s *filmService) checkUser(ctx context.Context, id int64) error {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("user with id = %d not found", id)
	}
	return nil
}

// resolveUsers maps an ascending id set to full user entities, skipping
// ids whose user has since been deleted.
func (s *filmService) resolveUsers(ctx context.Context, ids []int64) ([]response.UserResponse, error) {
	users := make([]response.UserResponse, 0, len(ids))
	for _, id := range ids {
		user, err := s.repo.User.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		if user == nil {
			continue
		}
		users = append(users, response.UserToResponse(user))
	}
	return users, nil
}

func (s *filmService) toResponse(ctx context.Context, film *entity.Film) (response.FilmResponse, error) {
	var mpa *entity.Rating
	if film.MpaID != 0 {
		rating, err := s.repo.Rating.FindByID(ctx, film.MpaID)
		if err != nil {
			return response.FilmResponse{}, fmt.Errorf("resolve rating: %w", err)
		}
		mpa = rating
	}

	genres := make([]*entity.Genre, 0, len(film.GenreIDs))
	for _, id := range film.GenreIDs {
		genre, err := s.repo.Genre.FindByID(ctx, id)
		if err != nil {
			return response.FilmResponse{}, fmt.Errorf("resolve genre: %w", err)
		}
		if genre == nil {
			continue
		}
		genres = append(genres, genre)
	}

	return response.FilmToResponse(film, mpa, genres), nil
}

func (s *filmService) toResponses(ctx context.Context, films []*entity.Film) ([]response.FilmResponse, error) {
	out := make([]response.FilmResponse, 0, len(films))
	for _, film := range films {
		resp, err := s.toResponse(ctx, film)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
