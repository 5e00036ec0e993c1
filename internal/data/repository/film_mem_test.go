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

func newFilm(name string) *entity.Film {
	return &entity.Film{
		Name:        name,
		Description: "some description",
		ReleaseDate: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:    90,
	}
}

func TestFilmMemoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		film, err := repo.Create(ctx, newFilm("film"))
		require.NoError(t, err)
		assert.Equal(t, int64(i), film.ID)
	}
}

func TestFilmMemoryRepository_IDReusedAfterDeletingMax(t *testing.T) {
	t.Parallel()

	// The allocator is max+1 over live entities, not a monotonic
	// counter: deleting the highest id frees it for the next create.
	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.Create(ctx, newFilm("film"))
		require.NoError(t, err)
	}
	require.NoError(t, repo.Delete(ctx, 4))

	film, err := repo.Create(ctx, newFilm("reborn"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), film.ID)
}

func TestFilmMemoryRepository_FindByID(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, newFilm("to find"))
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "to find", found.Name)
	})

	t.Run("absent returns nil, nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestFilmMemoryRepository_UpdateKeepsLikes(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	created, err := repo.Create(ctx, newFilm("original"))
	require.NoError(t, err)
	_, err = repo.AddLike(ctx, created.ID, 7)
	require.NoError(t, err)

	created.Name = "renamed"
	created.Likes = nil // likes in the payload must be ignored
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, []int64{7}, updated.Likes)
}

func TestFilmMemoryRepository_UpdateUnknownID(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	film := newFilm("ghost")
	film.ID = 42

	_, err := repo.Update(context.Background(), film)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFilmMemoryRepository_DeleteUnknownID(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	err := repo.Delete(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFilmMemoryRepository_Likes(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	film, err := repo.Create(ctx, newFilm("liked"))
	require.NoError(t, err)

	t.Run("ascending set semantics", func(t *testing.T) {
		for _, userID := range []int64{5, 2, 9, 2} {
			_, err := repo.AddLike(ctx, film.ID, userID)
			require.NoError(t, err)
		}
		updated, err := repo.FindByID(ctx, film.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 5, 9}, updated.Likes)
		assert.True(t, updated.HasLike(5))
		assert.False(t, updated.HasLike(3))
	})

	t.Run("remove", func(t *testing.T) {
		updated, err := repo.RemoveLike(ctx, film.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 9}, updated.Likes)
	})

	t.Run("remove absent like is a no-op", func(t *testing.T) {
		updated, err := repo.RemoveLike(ctx, film.ID, 777)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 9}, updated.Likes)
	})

	t.Run("unknown film", func(t *testing.T) {
		_, err := repo.AddLike(ctx, 99, 1)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestFilmMemoryRepository_FindPopular(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	// five films with like counts 5, 3, 3, 1, 0
	counts := []int{5, 3, 3, 1, 0}
	for _, n := range counts {
		film, err := repo.Create(ctx, newFilm("film"))
		require.NoError(t, err)
		for u := 1; u <= n; u++ {
			_, err := repo.AddLike(ctx, film.ID, int64(u))
			require.NoError(t, err)
		}
	}

	t.Run("top three, ties by insertion order", func(t *testing.T) {
		popular, err := repo.FindPopular(ctx, 3)
		require.NoError(t, err)
		require.Len(t, popular, 3)
		assert.Equal(t, int64(1), popular[0].ID) // 5 likes
		assert.Equal(t, int64(2), popular[1].ID) // 3 likes, earlier id wins the tie
		assert.Equal(t, int64(3), popular[2].ID) // 3 likes
	})

	t.Run("never more than the pool holds", func(t *testing.T) {
		popular, err := repo.FindPopular(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, popular, 5)
	})
}

func TestFilmMemoryRepository_FindAllOrderedByID(t *testing.T) {
	t.Parallel()

	repo := NewFilmMemoryRepository(zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newFilm("film"))
		require.NoError(t, err)
	}
	films, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, films, 3)
	for i, film := range films {
		assert.Equal(t, int64(i+1), film.ID)
	}
}
