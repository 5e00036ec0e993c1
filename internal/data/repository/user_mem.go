package repository

import (
	"context"
	"sync"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"go.uber.org/zap"
)

type userMemoryRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
	log   *zap.Logger
}

func NewUserMemoryRepository(log *zap.Logger) UserRepository {
	return &userMemoryRepository{
		users: make(map[int64]*entity.User),
		log:   log.With(zap.String("repository", "user")),
	}
}

func (r *userMemoryRepository) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user, 0); err != nil {
		return nil, err
	}

	stored := cloneUser(user)
	stored.ID = nextID(r.users)
	r.users[stored.ID] = stored

	r.log.Debug("User stored", zap.Int64("user_id", stored.ID), zap.String("login", stored.Login))
	return cloneUser(stored), nil
}

func (r *userMemoryRepository) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.users[user.ID]
	if !ok {
		return nil, apperr.NotFound("user with id = %d not found", user.ID)
	}
	if err := r.checkUnique(user, user.ID); err != nil {
		return nil, err
	}

	stored := cloneUser(user)
	stored.Friends = cloneIDs(old.Friends) // friendships are managed via their own endpoints
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *userMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("user with id = %d not found", id)
	}
	delete(r.users, id)

	// keep the mutual relation consistent on both sides
	for _, other := range r.users {
		other.Friends = removeSorted(other.Friends, id)
	}
	return nil
}

func (r *userMemoryRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *userMemoryRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.users))
	for _, id := range sortedIDs(r.users) {
		users = append(users, cloneUser(r.users[id]))
	}
	return users, nil
}

func (r *userMemoryRepository) AddFriend(_ context.Context, id, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, friend, err := r.pair(id, friendID)
	if err != nil {
		return err
	}
	user.Friends = insertSorted(user.Friends, friendID)
	friend.Friends = insertSorted(friend.Friends, id)
	return nil
}

func (r *userMemoryRepository) RemoveFriend(_ context.Context, id, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, friend, err := r.pair(id, friendID)
	if err != nil {
		return err
	}
	user.Friends = removeSorted(user.Friends, friendID)
	friend.Friends = removeSorted(friend.Friends, id)
	return nil
}

func (r *userMemoryRepository) pair(id, friendID int64) (*entity.User, *entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil, apperr.NotFound("user with id = %d not found", id)
	}
	friend, ok := r.users[friendID]
	if !ok {
		return nil, nil, apperr.NotFound("user with id = %d not found", friendID)
	}
	return user, friend, nil
}

// checkUnique runs the linear duplicate scan over the pool. Caller must
// hold the lock so check and insert stay one atomic step.
func (r *userMemoryRepository) checkUnique(user *entity.User, selfID int64) error {
	for id, other := range r.users {
		if id == selfID {
			continue
		}
		if other.Login == user.Login {
			return apperr.Duplicate("login %q is already in use", user.Login)
		}
		if other.Email == user.Email {
			return apperr.Duplicate("email %q is already in use", user.Email)
		}
	}
	return nil
}

func cloneUser(user *entity.User) *entity.User {
	out := *user
	out.Friends = cloneIDs(user.Friends)
	return &out
}
