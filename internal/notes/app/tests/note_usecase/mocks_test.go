package noteusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"noteshelf/internal/notes/domain/entities"
	"noteshelf/internal/notes/ports/repositories"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) FindOne(ctx context.Context, filter repositories.NoteFilter) (*entities.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Count(ctx context.Context, filter repositories.NoteFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockNoteRepository) List(ctx context.Context, filter repositories.NoteFilter, limit, offset int) ([]*entities.Note, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) SoftDelete(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

// txManagerStub выполняет функцию без реальной транзакции.
type txManagerStub struct{}

func (txManagerStub) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
