// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteshelf/internal/notes/domain/entities"
	"noteshelf/internal/notes/ports/repositories"
	"noteshelf/pkg/logger"
)

// DB - общая часть интерфейсов транзакционной обертки pkg/db/postgres
// и пула pgx; в тестах ее реализует pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DB
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DB) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `note_id, title, content, created_at, updated_at, deleted_at, created_by, updated_by, deleted_by`

// buildWhere собирает WHERE из условий фильтра. Count и List используют
// один и тот же фильтр, окно пагинации на Count не влияет.
func buildWhere(filter repositories.NoteFilter) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 2)

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.NoteID != nil {
		args = append(args, *filter.NoteID)
		conds = append(conds, fmt.Sprintf("note_id = $%d", len(args)))
	}
	if !filter.IncludeDeleted {
		conds = append(conds, "deleted_at IS NULL")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.DeletedAt,
		&note.CreatedBy,
		&note.UpdatedBy,
		&note.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create сохраняет новую заметку и возвращает ее с присвоенным ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.Int64("userID", note.CreatedBy))

	err := r.db.QueryRow(ctx,
		`INSERT INTO notes (title, content, created_at, updated_at, created_by, updated_by)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING note_id`,
		note.Title, note.Content, note.CreatedAt, note.UpdatedAt, note.CreatedBy, note.UpdatedBy,
	).Scan(&note.ID)

	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", note.ID))
	return note, nil
}

// FindOne получает одну заметку по условиям фильтра. Отсутствие строки
// возвращается как (nil, nil).
func (r *NoteRepository) FindOne(ctx context.Context, filter repositories.NoteFilter) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindOne"))

	where, args := buildWhere(filter)
	query := `SELECT ` + noteColumns + ` FROM notes` + where

	note, err := scanNote(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found")
			return nil, nil
		}
		log.Error(ctx, "failed to find note", zap.Error(err))
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return note, nil
}

// Count возвращает общее количество заметок по условиям фильтра.
func (r *NoteRepository) Count(ctx context.Context, filter repositories.NoteFilter) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Count"))

	where, args := buildWhere(filter)
	query := `SELECT COUNT(*) FROM notes` + where

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}

	return total, nil
}

// List получает страницу заметок по условиям фильтра. Порядок по note_id
// стабилен: страницы не перекрываются и не пропускают записи.
func (r *NoteRepository) List(ctx context.Context, filter repositories.NoteFilter, limit, offset int) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))
	log.Debug(ctx, "listing notes", zap.Int("limit", limit), zap.Int("offset", offset))

	where, args := buildWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+noteColumns+` FROM notes%s ORDER BY note_id ASC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update перезаписывает заголовок, содержимое и поля updated_* активной
// заметки. Поля created_* и deleted_* не затрагиваются.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", note.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, updated_at = $3, updated_by = $4
         WHERE note_id = $5 AND created_by = $6 AND deleted_at IS NULL`,
		note.Title, note.Content, note.UpdatedAt, note.UpdatedBy, note.ID, note.CreatedBy,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}

// SoftDelete помечает заметку удаленной: проставляет deleted_at/deleted_by,
// строка остается в таблице. Уже удаленная заметка не затрагивается.
func (r *NoteRepository) SoftDelete(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.SoftDelete"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", note.ID))

	result, err := r.db.Exec(ctx,
		`UPDATE notes SET deleted_at = $1, deleted_by = $2
         WHERE note_id = $3 AND created_by = $4 AND deleted_at IS NULL`,
		note.DeletedAt, note.DeletedBy, note.ID, note.CreatedBy,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.ErrNoteNotFound
	}

	return nil
}
