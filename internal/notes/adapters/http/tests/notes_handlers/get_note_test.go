package noteshandlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteshelf/internal/notes/app/dto"
	"noteshelf/internal/notes/domain/entities"
)

func TestGetNoteHandler(t *testing.T) {
	testNote := &entities.Note{
		ID:        3,
		Title:     "shopping",
		Content:   "milk and bread",
		CreatedBy: testUserID,
		UpdatedBy: testUserID,
	}

	tests := []struct {
		name            string
		target          string
		token           string
		mockSetup       func(service *mockNoteService)
		expectedCode    int
		expectedStatus  string
		expectedMessage string
	}{
		{
			name:   "Success case - note found",
			target: "/api/v1/notes/3",
			token:  validToken,
			mockSetup: func(service *mockNoteService) {
				service.On("GetNote", mock.Anything, testUserID, int64(3)).
					Return(testNote, nil).Once()
			},
			expectedCode:    fiber.StatusOK,
			expectedStatus:  "success",
			expectedMessage: "success read note with id=3",
		},
		{
			name:   "Error case - note not found",
			target: "/api/v1/notes/99",
			token:  validToken,
			mockSetup: func(service *mockNoteService) {
				service.On("GetNote", mock.Anything, testUserID, int64(99)).
					Return(nil, entities.ErrNoteNotFound).Once()
			},
			expectedCode:    fiber.StatusNotFound,
			expectedStatus:  "error",
			expectedMessage: "note not found",
		},
		{
			name:            "Error case - note id is not a number",
			target:          "/api/v1/notes/abc",
			token:           validToken,
			mockSetup:       func(service *mockNoteService) {},
			expectedCode:    fiber.StatusBadRequest,
			expectedStatus:  "error",
			expectedMessage: "invalid note id",
		},
		{
			name:            "Error case - missing token",
			target:          "/api/v1/notes/3",
			token:           "",
			mockSetup:       func(service *mockNoteService) {},
			expectedCode:    fiber.StatusUnauthorized,
			expectedStatus:  "error",
			expectedMessage: "no authorization header provided",
		},
		{
			name:   "Error case - service failure",
			target: "/api/v1/notes/3",
			token:  validToken,
			mockSetup: func(service *mockNoteService) {
				service.On("GetNote", mock.Anything, testUserID, int64(3)).
					Return(nil, errors.New("database connection error")).Once()
			},
			expectedCode:    fiber.StatusInternalServerError,
			expectedStatus:  "error",
			expectedMessage: "failed to read note with id=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockNoteService)
			tt.mockSetup(service)

			resp, result := performRequest(t, newTestApp(service),
				http.MethodGet, tt.target, "", tt.token)

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedMessage, result.Message)

			service.AssertExpectations(t)
		})
	}

	t.Run("Success case - response contains note fields", func(t *testing.T) {
		service := new(mockNoteService)
		service.On("GetNote", mock.Anything, testUserID, int64(3)).
			Return(testNote, nil).Once()

		_, result := performRequest(t, newTestApp(service),
			http.MethodGet, "/api/v1/notes/3", "", validToken)

		var note dto.Note
		require.NoError(t, json.Unmarshal(result.Data, &note))
		assert.Equal(t, int64(3), note.NoteID)
		assert.Equal(t, "shopping", note.Title)
		assert.Equal(t, "milk and bread", note.Content)

		service.AssertExpectations(t)
	})
}
