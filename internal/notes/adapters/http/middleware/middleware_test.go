package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/internal/notes/adapters/http/middleware"
	"notedesk/internal/notes/ports/repositories"
	"notedesk/pkg/logger"
)

var errPoolExhausted = errors.New("pool exhausted")

type stubStore struct {
	repo     repositories.NoteRepository
	err      error
	released int
}

func (s *stubStore) Acquire(context.Context) (repositories.NoteRepository, func(), error) {
	if s.err != nil {
		return nil, func() {}, s.err
	}
	return s.repo, func() { s.released++ }, nil
}

type nopRepository struct {
	repositories.NoteRepository
}

func TestStoreMiddleware(t *testing.T) {
	t.Run("binds and releases repository", func(t *testing.T) {
		store := &stubStore{repo: nopRepository{}}
		app := fiber.New()
		app.Use(middleware.NewStoreMiddleware(store))
		app.Get("/", func(c fiber.Ctx) error {
			repo, err := middleware.Repository(c)
			require.NoError(t, err)
			assert.NotNil(t, repo)
			return c.SendStatus(fiber.StatusNoContent)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, 1, store.released)
	})

	t.Run("releases when handler fails", func(t *testing.T) {
		store := &stubStore{repo: nopRepository{}}
		app := fiber.New()
		app.Use(middleware.NewStoreMiddleware(store))
		app.Get("/", func(fiber.Ctx) error {
			return fiber.ErrTeapot
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
		assert.Equal(t, 1, store.released)
	})

	t.Run("acquire error", func(t *testing.T) {
		app := fiber.New()
		called := false
		app.Use(middleware.NewStoreMiddleware(&stubStore{err: errPoolExhausted}))
		app.Get("/", func(fiber.Ctx) error {
			called = true
			return nil
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.False(t, called)
	})

	t.Run("unbound route", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", func(c fiber.Ctx) error {
			_, err := middleware.Repository(c)
			assert.ErrorIs(t, err, middleware.ErrNoRepository)
			return c.SendStatus(fiber.StatusOK)
		})

		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())
	app.Get("/", func(c fiber.Ctx) error {
		id, ok := logger.GetRequestID(middleware.RequestContext(c))
		require.True(t, ok)
		return c.SendString(id)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(middleware.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(middleware.HeaderRequestID), 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/", func(fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
