package usecase

import (
	"filmorate/internal/data/repository"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Film   FilmService
	User   UserService
	Genre  GenreService
	Rating RatingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Film:   NewFilmService(repo, log),
		User:   NewUserService(repo, log),
		Genre:  NewGenreService(repo, log),
		Rating: NewRatingService(repo, log),
	}
}
