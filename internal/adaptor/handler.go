package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Film   *FilmHandler
	User   *UserHandler
	Genre  *GenreHandler
	Rating *RatingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Film:   NewFilmHandler(service.Film, log),
		User:   NewUserHandler(service.User, log),
		Genre:  NewGenreHandler(service.Genre, log),
		Rating: NewRatingHandler(service.Rating, log),
	}
}

// handleServiceError maps the service error kinds to status codes in
// one place: validation and duplicate data are the client's fault,
// a missing entity is 404, anything else is 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case apperr.IsValidation(err):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperr.IsDuplicate(err):
		log.Warn(operation+" failed - duplicate data", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperr.IsNotFound(err):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathID parses a positive-integer path parameter, writing a 400 on
// anything else. The bool reports whether the handler may proceed.
func pathID(w http.ResponseWriter, value, name string) (int64, bool) {
	id, err := utils.ParsePositiveInt(value)
	if err != nil {
		utils.ResponseBadRequest(w, "Parameter "+name+" "+err.Error(), nil)
		return 0, false
	}
	return id, true
}
