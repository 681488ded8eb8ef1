package noteshandlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	t.Run("Неизвестный маршрут возвращает 404 в конверте API", func(t *testing.T) {
		service := new(mockNoteService)

		resp, result := performRequest(t, newTestApp(service),
			http.MethodGet, "/api/v1/unknown", "", validToken)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "error", result.Status)
		assert.Equal(t, "route not found", result.Message)
	})

	t.Run("Токен без префикса Bearer отклоняется", func(t *testing.T) {
		service := new(mockNoteService)
		fiberApp := newTestApp(service)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/", nil)
		req.Header.Set("Authorization", validToken)

		resp, err := fiberApp.Test(req)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var result envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "invalid token format", result.Message)

		service.AssertNotCalled(t, "ListNotes", mock.Anything, mock.Anything, mock.Anything)
	})
}
