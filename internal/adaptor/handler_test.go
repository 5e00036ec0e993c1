package adaptor_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filmorate/internal/data/repository"
	"filmorate/internal/wire"
	"filmorate/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// envelope mirrors utils.Response with the payload kept raw so each
// test can decode it into the shape it expects.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	app := wire.Wiring(repo, &utils.Config{}, zap.NewNop())
	return app.Router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func filmBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "a film",
		"releaseDate": "2010-07-16",
		"duration":    148,
	}
}

func userBody(login string) map[string]any {
	return map[string]any{
		"email":    login + "@example.com",
		"login":    login,
		"birthday": "1990-05-20",
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_CreateFilm(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		router := newTestRouter(t)
		rec, env := doRequest(t, router, http.MethodPost, "/films", filmBody("Inception"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Status)

		var film struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &film))
		assert.Equal(t, int64(1), film.ID)
		assert.Equal(t, "Inception", film.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/films", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		router := newTestRouter(t)
		rec, env := doRequest(t, router, http.MethodPost, "/films", filmBody("   "))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Status)
	})
}

func TestRouter_UpdateFilm(t *testing.T) {
	t.Parallel()

	t.Run("unknown id", func(t *testing.T) {
		router := newTestRouter(t)
		body := filmBody("Ghost")
		body["id"] = 42
		rec, _ := doRequest(t, router, http.MethodPut, "/films", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		router := newTestRouter(t)
		_, created := doRequest(t, router, http.MethodPost, "/films", filmBody("Inception"))

		var film struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(created.Data, &film))

		rec, env := doRequest(t, router, http.MethodPut, "/films", map[string]any{
			"id":   film.ID,
			"name": "Tenet",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated struct {
			Name     string `json:"name"`
			Duration int64  `json:"duration"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Tenet", updated.Name)
		assert.Equal(t, int64(148), updated.Duration)
	})
}

func TestRouter_GetFilmByID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/films", filmBody("Inception"))

	t.Run("existing", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative id", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_DeleteFilm(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/films", filmBody("Inception"))

	t.Run("missing id param", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodDelete, "/films", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("existing", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodDelete, "/films?id=1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already deleted", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodDelete, "/films?id=1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_PopularFilms(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	for i := 0; i < 3; i++ {
		doRequest(t, router, http.MethodPost, "/films", filmBody(fmt.Sprintf("film %d", i)))
	}

	t.Run("default count", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/films/popular", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var films []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &films))
		assert.Len(t, films, 3)
	})

	t.Run("explicit count caps the list", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/films/popular?count=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var films []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &films))
		assert.Len(t, films, 2)
	})

	t.Run("non-numeric count", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/popular?count=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative count", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/films/popular?count=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Likes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/films", filmBody("Inception"))
	doRequest(t, router, http.MethodPost, "/users", userBody("alice"))

	t.Run("add", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPut, "/films/1/like/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var likers []struct {
			Login string `json:"login"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &likers))
		require.Len(t, likers, 1)
		assert.Equal(t, "alice", likers[0].Login)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/films/1/like/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("remove", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodDelete, "/films/1/like/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var likers []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &likers))
		assert.Empty(t, likers)
	})
}

func TestRouter_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("valid, name defaults to login", func(t *testing.T) {
		router := newTestRouter(t)
		rec, env := doRequest(t, router, http.MethodPost, "/users", userBody("alice"))
		require.Equal(t, http.StatusOK, rec.Code)

		var user struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Name)
	})

	t.Run("duplicate login", func(t *testing.T) {
		router := newTestRouter(t)
		doRequest(t, router, http.MethodPost, "/users", userBody("alice"))

		dup := userBody("alice")
		dup["email"] = "other@example.com"
		rec, _ := doRequest(t, router, http.MethodPost, "/users", dup)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		router := newTestRouter(t)
		body := userBody("alice")
		body["email"] = "not-an-email"
		rec, _ := doRequest(t, router, http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Friends(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/users", userBody("alice"))
	doRequest(t, router, http.MethodPost, "/users", userBody("bob"))
	doRequest(t, router, http.MethodPost, "/users", userBody("carol"))

	t.Run("befriending oneself", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/users/1/friends/1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("add and list", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/users/1/friends/3", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec, _ = doRequest(t, router, http.MethodPut, "/users/2/friends/3", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, env := doRequest(t, router, http.MethodGet, "/users/3/friends", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var friends []struct {
			Login string `json:"login"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &friends))
		require.Len(t, friends, 2)
		assert.Equal(t, "alice", friends[0].Login)
		assert.Equal(t, "bob", friends[1].Login)
	})

	t.Run("common friends", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/users/1/friends/common/2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var common []struct {
			Login string `json:"login"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &common))
		require.Len(t, common, 1)
		assert.Equal(t, "carol", common[0].Login)
	})

	t.Run("unknown friend id", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPut, "/users/1/friends/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_GenresAndRatings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	t.Run("create and fetch a genre", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPost, "/genres", map[string]any{"name": "Drama"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec, env := doRequest(t, router, http.MethodGet, "/genres/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var genre struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &genre))
		assert.Equal(t, "Drama", genre.Name)
	})

	t.Run("lookup genre by name", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/genres?name=Drama", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = doRequest(t, router, http.MethodGet, "/genres?name=Western", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("create and fetch a rating", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodPost, "/mpa", map[string]any{"name": "PG-13"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec, env := doRequest(t, router, http.MethodGet, "/mpa/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var rating struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &rating))
		assert.Equal(t, "PG-13", rating.Name)
	})

	t.Run("unknown rating id", func(t *testing.T) {
		rec, _ := doRequest(t, router, http.MethodGet, "/mpa/99", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
