// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"

	"noteshelf/internal/notes/domain/entities"
)

// NoteFilter - составной предикат выборки заметок. Нулевые указатели
// означают отсутствие условия; IncludeDeleted=false добавляет условие
// deleted_at IS NULL.
type NoteFilter struct {
	CreatedBy      *int64
	NoteID         *int64
	IncludeDeleted bool
}

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// Count использует те же условия фильтра, что и List, но без окна пагинации.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	FindOne(ctx context.Context, filter NoteFilter) (*entities.Note, error)
	Count(ctx context.Context, filter NoteFilter) (int, error)
	List(ctx context.Context, filter NoteFilter, limit, offset int) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	SoftDelete(ctx context.Context, note *entities.Note) error
}
