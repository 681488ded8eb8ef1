// Package dto содержит контракты запросов и ответов HTTP API заметок.
package dto

import (
	"errors"
	"time"
	"unicode/utf8"

	"noteshelf/internal/notes/domain/entities"
)

// Границы валидации полей заметки.
const (
	TitleMinLen   = 1
	TitleMaxLen   = 100
	ContentMinLen = 6
	ContentMaxLen = 500
)

// Ошибки валидации контрактов.
var (
	ErrTitleLength    = errors.New("title must be between 1 and 100 characters")
	ErrContentLength  = errors.New("content must be between 6 and 500 characters")
	ErrInvalidPage    = errors.New("page must be greater than or equal to 1")
	ErrInvalidPerPage = errors.New("item_per_page must be greater than 0")
)

// Response - единый конверт ответа API.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewSuccessResponse создает успешный конверт ответа.
func NewSuccessResponse(message string, data any) Response {
	return Response{Status: "success", Message: message, Data: data}
}

// NewErrorResponse создает конверт ответа с ошибкой.
func NewErrorResponse(message string) Response {
	return Response{Status: "error", Message: message, Data: nil}
}

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate проверяет границы полей запроса.
func (r *CreateNoteRequest) Validate() error {
	return validateNoteFields(r.Title, r.Content)
}

// UpdateNoteRequest содержит данные для обновления заметки.
type UpdateNoteRequest struct {
	NewTitle   string `json:"new_title"`
	NewContent string `json:"new_content"`
}

// Validate проверяет границы полей запроса.
func (r *UpdateNoteRequest) Validate() error {
	return validateNoteFields(r.NewTitle, r.NewContent)
}

func validateNoteFields(title, content string) error {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < TitleMinLen || titleLen > TitleMaxLen {
		return ErrTitleLength
	}

	contentLen := utf8.RuneCountInString(content)
	if contentLen < ContentMinLen || contentLen > ContentMaxLen {
		return ErrContentLength
	}

	return nil
}

// ListNotesQuery содержит параметры запроса списка заметок.
type ListNotesQuery struct {
	Page           int  `query:"page"`
	ItemPerPage    int  `query:"item_per_page"`
	IncludeDeleted bool `query:"include_deleted"`
	FilterUser     bool `query:"filter_user"`
}

// DefaultListNotesQuery возвращает параметры списка по умолчанию:
// первая страница по 10 записей, без удаленных, только свои заметки.
func DefaultListNotesQuery() ListNotesQuery {
	return ListNotesQuery{
		Page:        1,
		ItemPerPage: 10,
		FilterUser:  true,
	}
}

// Validate проверяет параметры пагинации.
func (q *ListNotesQuery) Validate() error {
	if q.Page < 1 {
		return ErrInvalidPage
	}
	if q.ItemPerPage < 1 {
		return ErrInvalidPerPage
	}
	return nil
}

// Note представляет заметку в ответе API.
type Note struct {
	NoteID    int64      `json:"note_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedBy int64      `json:"created_by"`
	UpdatedBy int64      `json:"updated_by"`
	DeletedBy *int64     `json:"deleted_by"`
}

// NoteFromEntity преобразует доменную заметку в контракт ответа.
func NoteFromEntity(note *entities.Note) *Note {
	if note == nil {
		return nil
	}
	return &Note{
		NoteID:    note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		DeletedAt: note.DeletedAt,
		CreatedBy: note.CreatedBy,
		UpdatedBy: note.UpdatedBy,
		DeletedBy: note.DeletedBy,
	}
}

// NotesFromEntities преобразует список доменных заметок.
func NotesFromEntities(notes []*entities.Note) []*Note {
	records := make([]*Note, 0, len(notes))
	for _, note := range notes {
		records = append(records, NoteFromEntity(note))
	}
	return records
}

// PaginationMeta содержит метаданные постраничной выборки.
type PaginationMeta struct {
	TotalItem   int `json:"total_item"`
	Page        int `json:"page"`
	ItemPerPage int `json:"item_per_page"`
	TotalPage   int `json:"total_page"`
}

// ListNotesData - полезная нагрузка ответа списка заметок.
type ListNotesData struct {
	Records []*Note        `json:"records"`
	Meta    PaginationMeta `json:"meta"`
}
