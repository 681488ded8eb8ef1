package postgres

import (
	"noteshelf/internal/notes/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	db DB
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db DB) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// NoteRepository возвращает репозиторий для работы с заметками.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.db)
}
