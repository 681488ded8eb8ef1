// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"noteshelf/internal/notes/domain/entities"
	"noteshelf/internal/notes/ports/cache"
	"noteshelf/internal/notes/ports/repositories"
	"noteshelf/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var ErrInvalidParams = errors.New("invalid parameters")

// ListParams - параметры постраничной выборки заметок. FilterUser=false
// отключает фильтр по владельцу и отдает заметки всех пользователей.
type ListParams struct {
	Page           int
	ItemPerPage    int
	IncludeDeleted bool
	FilterUser     bool
}

// Pagination - метаданные постраничной выборки. TotalItem считается по тем
// же условиям фильтра без учета окна пагинации.
type Pagination struct {
	TotalItem   int
	Page        int
	ItemPerPage int
	TotalPage   int
}

// NoteUseCase представляет собой бизнес-логику работы с заметками. Каждая
// операция выполняется в одной транзакционной единице работы.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	txManager repositories.TxManager
	noteCache cache.Cache
	cacheTTL  time.Duration
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	txManager repositories.TxManager,
	noteCache cache.Cache,
	cacheTTL time.Duration,
) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		txManager: txManager,
		noteCache: noteCache,
		cacheTTL:  cacheTTL,
	}
}

// activeNoteFilter - фильтр ReadNote/UpdateNote/DeleteNote: заметка
// принадлежит вызывающему пользователю и не помечена удаленной.
func activeNoteFilter(userID, noteID int64) repositories.NoteFilter {
	return repositories.NoteFilter{
		CreatedBy: &userID,
		NoteID:    &noteID,
	}
}

// CreateNote создает новую заметку для пользователя и возвращает ее вместе
// с присвоенным хранилищем идентификатором.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID int64, title, content string) (*entities.Note, error) {
	var created *entities.Note

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		note := entities.NewNote(userID, title, content, time.Now().UTC())

		saved, err := uc.noteRepo.Create(ctx, note)
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "note created",
		zap.Int64("noteID", created.ID), zap.Int64("userID", userID))
	return created, nil
}

// ListNotes возвращает страницу заметок и метаданные пагинации.
// Страница за пределами выборки дает пустой список, а не ошибку.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID int64, params ListParams) ([]*entities.Note, *Pagination, error) {
	if params.Page < 1 || params.ItemPerPage < 1 {
		return nil, nil, fmt.Errorf("list notes: %w", ErrInvalidParams)
	}

	filter := repositories.NoteFilter{IncludeDeleted: params.IncludeDeleted}
	if params.FilterUser {
		filter.CreatedBy = &userID
	}

	var (
		notes []*entities.Note
		meta  *Pagination
	)

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		total, err := uc.noteRepo.Count(ctx, filter)
		if err != nil {
			return fmt.Errorf("count notes: %w", err)
		}

		offset := (params.Page - 1) * params.ItemPerPage
		rows, err := uc.noteRepo.List(ctx, filter, params.ItemPerPage, offset)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}

		notes = rows
		meta = &Pagination{
			TotalItem:   total,
			Page:        params.Page,
			ItemPerPage: params.ItemPerPage,
			TotalPage:   (total + params.ItemPerPage - 1) / params.ItemPerPage,
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return notes, meta, nil
}

// GetNote возвращает активную заметку пользователя по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID int64) (*entities.Note, error) {
	if cached := uc.cachedNote(ctx, userID, noteID); cached != nil {
		return cached, nil
	}

	var note *entities.Note

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		found, err := uc.noteRepo.FindOne(ctx, activeNoteFilter(userID, noteID))
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}
		if found == nil {
			return entities.ErrNoteNotFound
		}

		note = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.storeCachedNote(ctx, note)
	return note, nil
}

// UpdateNote обновляет заголовок и содержимое существующей заметки.
// Поля created_* и deleted_* не изменяются.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID int64, title, content string) (*entities.Note, error) {
	var note *entities.Note

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		found, err := uc.noteRepo.FindOne(ctx, activeNoteFilter(userID, noteID))
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}
		if found == nil {
			return entities.ErrNoteNotFound
		}

		found.Title = title
		found.Content = content
		found.UpdatedAt = time.Now().UTC()
		found.UpdatedBy = userID

		if err := uc.noteRepo.Update(ctx, found); err != nil {
			return fmt.Errorf("update note: %w", err)
		}

		note = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dropCachedNote(ctx, userID, noteID)
	return note, nil
}

// DeleteNote помечает заметку удаленной. Повторное удаление по тому же id
// возвращает ErrNoteNotFound: фильтр отбирает только активные заметки.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID int64) (*entities.Note, error) {
	var note *entities.Note

	err := uc.txManager.RunInTx(ctx, func(ctx context.Context) error {
		found, err := uc.noteRepo.FindOne(ctx, activeNoteFilter(userID, noteID))
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}
		if found == nil {
			return entities.ErrNoteNotFound
		}

		now := time.Now().UTC()
		found.DeletedAt = &now
		found.DeletedBy = &userID

		if err := uc.noteRepo.SoftDelete(ctx, found); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}

		note = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dropCachedNote(ctx, userID, noteID)
	return note, nil
}

func noteCacheKey(userID, noteID int64) string {
	return fmt.Sprintf("note:%d:%d", userID, noteID)
}

// cachedNote возвращает заметку из кэша или nil. Ошибки кэша не
// прерывают операцию.
func (uc *NoteUseCase) cachedNote(ctx context.Context, userID, noteID int64) *entities.Note {
	if uc.noteCache == nil {
		return nil
	}

	value, err := uc.noteCache.Get(ctx, noteCacheKey(userID, noteID))
	if err != nil || value == "" {
		return nil
	}

	var note entities.Note
	if err := json.Unmarshal([]byte(value), &note); err != nil {
		logger.Log(ctx).Debug(ctx, "failed to decode cached note", zap.Error(err))
		return nil
	}

	return &note
}

func (uc *NoteUseCase) storeCachedNote(ctx context.Context, note *entities.Note) {
	if uc.noteCache == nil {
		return
	}

	value, err := json.Marshal(note)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "failed to encode note for cache", zap.Error(err))
		return
	}

	if err := uc.noteCache.Set(ctx, noteCacheKey(note.CreatedBy, note.ID), string(value), uc.cacheTTL); err != nil {
		logger.Log(ctx).Debug(ctx, "failed to cache note", zap.Error(err))
	}
}

func (uc *NoteUseCase) dropCachedNote(ctx context.Context, userID, noteID int64) {
	if uc.noteCache == nil {
		return
	}

	if err := uc.noteCache.Delete(ctx, noteCacheKey(userID, noteID)); err != nil {
		logger.Log(ctx).Debug(ctx, "failed to drop cached note", zap.Error(err))
	}
}
