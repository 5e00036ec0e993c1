package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/apperr"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetAll(ctx context.Context) ([]response.UserResponse, error)
	GetByID(ctx context.Context, id int64) (*response.UserResponse, error)
	Create(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, id, friendID int64) ([]response.UserResponse, error)
	RemoveFriend(ctx context.Context, id, friendID int64) ([]response.UserResponse, error)
	GetFriends(ctx context.Context, id int64) ([]response.UserResponse, error)
	GetCommonFriends(ctx context.Context, id, otherID int64) ([]response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetAll(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}
	return response.UsersToResponse(users), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := s.requireUser(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	birthday, err := time.Parse(utils.DateLayout, req.Birthday)
	if err != nil {
		return nil, apperr.Validation("invalid birthday: %s", req.Birthday)
	}

	user := &entity.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: birthday,
	}
	if !req.HasName() {
		user.Name = req.Login
	}

	user, err = s.repo.User.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User created", zap.Int64("user_id", user.ID), zap.String("login", user.Login))
	resp := response.UserToResponse(user)
	return &resp, nil
}

// Update merges the request into the stored user field by field. A
// malformed login, email or birthday keeps the stored value silently;
// a well-formed login or email that differs from the current one but
// collides with another user is a duplicate error. Resubmitting one's
// own current login or email is accepted.
func (s *userService) Update(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	if req.ID == 0 {
		return nil, apperr.NotFound("user id must be specified")
	}

	old, err := s.repo.User.FindByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if old == nil {
		return nil, apperr.NotFound("user with id = %d not found", req.ID)
	}

	merged := *old

	if isValidLogin(req.Login) {
		merged.Login = req.Login
	}
	if isValidEmail(req.Email) {
		merged.Email = req.Email
	}
	if req.Birthday != "" {
		if date, err := time.Parse(utils.DateLayout, req.Birthday); err == nil && !date.After(time.Now()) {
			merged.Birthday = date
		}
	}
	if req.HasName() {
		merged.Name = req.Name
	} else {
		merged.Name = merged.Login
	}

	user, err := s.repo.User.Update(ctx, &merged)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info("User updated", zap.Int64("user_id", user.ID))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.User.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (s *userService) AddFriend(ctx context.Context, id, friendID int64) ([]response.UserResponse, error) {
	if id == friendID {
		return nil, apperr.Validation("user cannot befriend themselves, id = %d", id)
	}
	if err := s.repo.User.AddFriend(ctx, id, friendID); err != nil {
		return nil, fmt.Errorf("add friend: %w", err)
	}
	s.log.Info("Friendship added", zap.Int64("user_id", id), zap.Int64("friend_id", friendID))
	return s.GetFriends(ctx, id)
}

func (s *userService) RemoveFriend(ctx context.Context, id, friendID int64) ([]response.UserResponse, error) {
	if id == friendID {
		return nil, apperr.Validation("user cannot unfriend themselves, id = %d", id)
	}
	if err := s.repo.User.RemoveFriend(ctx, id, friendID); err != nil {
		return nil, fmt.Errorf("remove friend: %w", err)
	}
	s.log.Info("Friendship removed", zap.Int64("user_id", id), zap.Int64("friend_id", friendID))
	return s.GetFriends(ctx, id)
}

func (s *userService) GetFriends(ctx context.Context, id int64) ([]response.UserResponse, error) {
	user, err := s.requireUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, user.Friends)
}

func (s *userService) GetCommonFriends(ctx context.Context, id, otherID int64) ([]response.UserResponse, error) {
	if id == otherID {
		return nil, apperr.Validation("common friends require two distinct users, id = %d", id)
	}
	user, err := s.requireUser(ctx, id)
	if err != nil {
		return nil, err
	}
	other, err := s.requireUser(ctx, otherID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, intersectSorted(user.Friends, other.Friends))
}

func (s *userService) requireUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user with id = %d not found", id)
	}
	return user, nil
}

func (s *userService) resolveUsers(ctx context.Context, ids []int64) ([]response.UserResponse, error) {
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

// intersectSorted intersects two ascending id slices.
func intersectSorted(a, b []int64) []int64 {
	var out []int64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func isValidLogin(login string) bool {
	return strings.TrimSpace(login) != "" && !strings.ContainsAny(login, " \t")
}

// isValidEmail mirrors the creation-time rule: non-blank with exactly
// one "@".
func isValidEmail(email string) bool {
	return strings.TrimSpace(email) != "" && strings.Count(email, "@") == 1
}
