package noteshandlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterhttp "noteshelf/internal/notes/adapters/http"
	"noteshelf/internal/notes/app"
	"noteshelf/internal/notes/domain/entities"
	"noteshelf/internal/notes/ports/services"
)

const (
	validToken = "valid-token"
	testUserID = int64(7)
)

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) CreateNote(ctx context.Context, userID int64, title, content string) (*entities.Note, error) {
	args := m.Called(ctx, userID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteService) ListNotes(ctx context.Context, userID int64, params app.ListParams) ([]*entities.Note, *app.Pagination, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*entities.Note), args.Get(1).(*app.Pagination), args.Error(2)
}

func (m *mockNoteService) GetNote(ctx context.Context, userID, noteID int64) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, userID, noteID int64, title, content string) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, userID, noteID int64) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

// stubTokenService принимает единственный фиксированный токен.
type stubTokenService struct{}

func (stubTokenService) ValidateAccessToken(_ context.Context, token string) (int64, error) {
	if token != validToken {
		return 0, services.ErrInvalidJWTToken
	}
	return testUserID, nil
}

func newTestApp(service *mockNoteService) *fiber.App {
	fiberApp := fiber.New()
	adapterhttp.SetupRouter(fiberApp, service, stubTokenService{})
	return fiberApp
}

// envelope - конверт ответа API с сырой полезной нагрузкой.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func performRequest(t *testing.T, fiberApp *fiber.App, method, target, body, token string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, resp.Body.Close())
	})

	var result envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	return resp, result
}
