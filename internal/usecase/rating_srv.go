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

type RatingService interface {
	GetAll(ctx context.Context) ([]response.RatingResponse, error)
	GetByID(ctx context.Context, id int64) (*response.RatingResponse, error)
	GetByName(ctx context.Context, name string) (*response.RatingResponse, error)
	Create(ctx context.Context, req *request.RatingRequest) (*response.RatingResponse, error)
	Update(ctx context.Context, req *request.RatingRequest) (*response.RatingResponse, error)
	Delete(ctx context.Context, id int64) error
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) GetAll(ctx context.Context) ([]response.RatingResponse, error) {
	ratings, err := s.repo.Rating.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	return response.RatingsToResponse(ratings), nil
}

func (s *ratingService) GetByID(ctx context.Context, id int64) (*response.RatingResponse, error) {
	rating, err := s.repo.Rating.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rating by id: %w", err)
	}
	if rating == nil {
		return nil, apperr.NotFound("rating with id = %d not found", id)
	}
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) GetByName(ctx context.Context, name string) (*response.RatingResponse, error) {
	rating, err := s.repo.Rating.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get rating by name: %w", err)
	}
	if rating == nil {
		return nil, apperr.NotFound("rating with name = %q not found", name)
	}
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) Create(ctx context.Context, req *request.RatingRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create rating validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	rating, err := s.repo.Rating.Create(ctx, &entity.Rating{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.log.Info("Rating created", zap.Int64("rating_id", rating.ID), zap.String("name", rating.Name))
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) Update(ctx context.Context, req *request.RatingRequest) (*response.RatingResponse, error) {
	if req.ID == 0 {
		return nil, apperr.NotFound("rating id must be specified")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update rating validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	rating, err := s.repo.Rating.Update(ctx, &entity.Rating{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	s.log.Info("Rating updated", zap.Int64("rating_id", rating.ID))
	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Rating.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	s.log.Info("Rating deleted", zap.Int64("rating_id", id))
	return nil
}
