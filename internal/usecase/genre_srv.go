package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type GenreService interface {
	GetAll(ctx context.Context) ([]response.GenreResponse, error)
	GetByID(ctx context.Context, id int64) (*response.GenreResponse, error)
	GetByName(ctx context.Context, name string) (*response.GenreResponse, error)
	Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	Update(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetAll(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) GetByID(ctx context.Context, id int64) (*response.GenreResponse, error) {
	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre by id: %w", err)
	}
	if genre == nil {
		return nil, apperr.NotFound("genre with id = %d not found", id)
	}
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) GetByName(ctx context.Context, name string) (*response.GenreResponse, error) {
	genre, err := s.repo.Genre.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get genre by name: %w", err)
	}
	if genre == nil {
		return nil, apperr.NotFound("genre with name = %q not found", name)
	}
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	genre, err := s.repo.Genre.Create(ctx, &entity.Genre{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.Int64("genre_id", genre.ID), zap.String("name", genre.Name))
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if req.ID == 0 {
		return nil, apperr.NotFound("genre id must be specified")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update genre validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	genre, err := s.repo.Genre.Update(ctx, &entity.Genre{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("update genre: %w", err)
	}

	s.log.Info("Genre updated", zap.Int64("genre_id", genre.ID))
	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Genre.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	s.log.Info("Genre deleted", zap.Int64("genre_id", id))
	return nil
}
