// Package entities defines the domain entities for the notes service.
package entities

import (
	"errors"
	"time"
)

// ErrNoteNotFound возвращается, когда активная заметка с указанным id
// не принадлежит вызывающему пользователю или не существует.
var ErrNoteNotFound = errors.New("note not found")

// Note представляет собой заметку пользователя. Мягкое удаление: заметка
// с ненулевым DeletedAt считается неактивной, строка из базы не удаляется.
type Note struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	CreatedBy int64
	UpdatedBy int64
	DeletedBy *int64
}

// NewNote creates a new note owned by the given user. Both timestamps are
// set to the same instant and CreatedBy never changes afterwards.
func NewNote(userID int64, title, content string, now time.Time) *Note {
	return &Note{
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
}

// IsDeleted сообщает, помечена ли заметка как удаленная.
func (n *Note) IsDeleted() bool {
	return n.DeletedAt != nil
}
