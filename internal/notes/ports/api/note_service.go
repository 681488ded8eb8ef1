// Package api определяет интерфейс уровня приложения, который потребляют
// HTTP-обработчики.
package api

import (
	"context"

	"noteshelf/internal/notes/app"
	"noteshelf/internal/notes/domain/entities"
)

// NoteService - операции над заметками, доступные транспортному слою.
// Реализуется app.NoteUseCase.
type NoteService interface {
	CreateNote(ctx context.Context, userID int64, title, content string) (*entities.Note, error)
	ListNotes(ctx context.Context, userID int64, params app.ListParams) ([]*entities.Note, *app.Pagination, error)
	GetNote(ctx context.Context, userID, noteID int64) (*entities.Note, error)
	UpdateNote(ctx context.Context, userID, noteID int64, title, content string) (*entities.Note, error)
	DeleteNote(ctx context.Context, userID, noteID int64) (*entities.Note, error)
}
