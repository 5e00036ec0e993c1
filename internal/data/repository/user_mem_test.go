package repository

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUser(login string) *entity.User {
	return &entity.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserMemoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	first, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestUserMemoryRepository_CreateRejectsDuplicates(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)

	t.Run("login", func(t *testing.T) {
		dup := newUser("alice")
		dup.Email = "other@example.com"
		_, err := repo.Create(ctx, dup)
		assert.True(t, apperr.IsDuplicate(err))
	})

	t.Run("email", func(t *testing.T) {
		dup := newUser("bob")
		dup.Email = "alice@example.com"
		_, err := repo.Create(ctx, dup)
		assert.True(t, apperr.IsDuplicate(err))
	})
}

func TestUserMemoryRepository_UpdateUniqueness(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	alice, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)

	t.Run("own values do not collide with themselves", func(t *testing.T) {
		alice.Name = "Alice A."
		updated, err := repo.Update(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, "Alice A.", updated.Name)
	})

	t.Run("taking another user's login fails", func(t *testing.T) {
		alice.Login = "bob"
		_, err := repo.Update(ctx, alice)
		assert.True(t, apperr.IsDuplicate(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		ghost := newUser("ghost")
		ghost.ID = 42
		_, err := repo.Update(ctx, ghost)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestUserMemoryRepository_UpdateKeepsFriends(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	alice, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)
	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	alice.Name = "renamed"
	alice.Friends = nil // friends in the payload must be ignored
	updated, err := repo.Update(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob.ID}, updated.Friends)
}

func TestUserMemoryRepository_FriendshipIsMutual(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	alice, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)

	t.Run("add writes both directions", func(t *testing.T) {
		require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

		a, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		b, err := repo.FindByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{bob.ID}, a.Friends)
		assert.Equal(t, []int64{alice.ID}, b.Friends)
		assert.True(t, a.HasFriend(bob.ID))
		assert.True(t, b.HasFriend(alice.ID))
	})

	t.Run("repeated add is idempotent", func(t *testing.T) {
		require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))
		a, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{bob.ID}, a.Friends)
	})

	t.Run("remove clears both directions", func(t *testing.T) {
		require.NoError(t, repo.RemoveFriend(ctx, bob.ID, alice.ID))

		a, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		b, err := repo.FindByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, a.Friends)
		assert.Empty(t, b.Friends)
	})

	t.Run("unknown friend id", func(t *testing.T) {
		err := repo.AddFriend(ctx, alice.ID, 99)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestUserMemoryRepository_DeleteScrubsFriendSets(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	ctx := context.Background()

	alice, err := repo.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	bob, err := repo.Create(ctx, newUser("bob"))
	require.NoError(t, err)
	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	require.NoError(t, repo.Delete(ctx, bob.ID))

	a, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, a.Friends)
}

func TestUserMemoryRepository_FindByIDAbsent(t *testing.T) {
	t.Parallel()

	repo := NewUserMemoryRepository(zap.NewNop())
	user, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, user)
}
