// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshelf/internal/notes/adapters/http/middleware"
	"noteshelf/internal/notes/app"
	"noteshelf/internal/notes/app/dto"
	"noteshelf/internal/notes/domain/entities"
	"noteshelf/internal/notes/ports/api"
	"noteshelf/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUnauthorized       = "unauthorized"
	ErrMsgNoteNotFound       = "note not found"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteService api.NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// callerID извлекает идентификатор пользователя, разрешенный auth middleware.
func callerID(ctx fiber.Ctx) (int64, bool) {
	userID, ok := ctx.Locals(middleware.UserIDKey).(int64)
	return userID, ok
}

func sendJSON(ctx fiber.Ctx, status int, resp dto.Response) error {
	if err := ctx.Status(status).JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// errorResponse отображает ошибку use case в HTTP-статус по фиксированной
// таблице: NotFound - 404, неверные параметры - 400, остальное - 500 с
// запасным сообщением операции.
func errorResponse(ctx fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, entities.ErrNoteNotFound):
		return sendJSON(ctx, fiber.StatusNotFound, dto.NewErrorResponse(ErrMsgNoteNotFound))
	case errors.Is(err, app.ErrInvalidParams):
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	default:
		return sendJSON(ctx, fiber.StatusInternalServerError, dto.NewErrorResponse(fallback))
	}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	userID, ok := callerID(ctx)
	if !ok {
		return sendJSON(ctx, fiber.StatusUnauthorized, dto.NewErrorResponse(ErrMsgUnauthorized))
	}

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(ErrMsgInvalidRequestBody))
	}
	if err := req.Validate(); err != nil {
		log.Debug(requestCtx, "create note validation failed", zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	note, err := h.noteService.CreateNote(requestCtx, userID, req.Title, req.Content)
	if err != nil {
		log.Error(requestCtx, "failed to create note", zap.Error(err))
		return errorResponse(ctx, err, "failed to create new note")
	}

	return sendJSON(ctx, fiber.StatusOK,
		dto.NewSuccessResponse("success create new note", dto.NoteFromEntity(note)))
}

// ListNotes обрабатывает запрос на получение списка заметок с пагинацией.
// Флаг filter_user=false отдает заметки всех пользователей любому
// аутентифицированному вызывающему; дополнительной авторизации нет.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	userID, ok := callerID(ctx)
	if !ok {
		return sendJSON(ctx, fiber.StatusUnauthorized, dto.NewErrorResponse(ErrMsgUnauthorized))
	}

	query := dto.DefaultListNotesQuery()
	if err := ctx.Bind().Query(&query); err != nil {
		log.Debug(requestCtx, "invalid pagination parameters", zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse("invalid pagination parameters"))
	}
	if err := query.Validate(); err != nil {
		log.Debug(requestCtx, "list notes validation failed", zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	records, meta, err := h.noteService.ListNotes(requestCtx, userID, app.ListParams{
		Page:           query.Page,
		ItemPerPage:    query.ItemPerPage,
		IncludeDeleted: query.IncludeDeleted,
		FilterUser:     query.FilterUser,
	})
	if err != nil {
		log.Error(requestCtx, "failed to list notes", zap.Error(err))
		return errorResponse(ctx, err, "failed to read all note")
	}

	return sendJSON(ctx, fiber.StatusOK,
		dto.NewSuccessResponse("success read all note", dto.ListNotesData{
			Records: dto.NotesFromEntities(records),
			Meta: dto.PaginationMeta{
				TotalItem:   meta.TotalItem,
				Page:        meta.Page,
				ItemPerPage: meta.ItemPerPage,
				TotalPage:   meta.TotalPage,
			},
		}))
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	userID, ok := callerID(ctx)
	if !ok {
		return sendJSON(ctx, fiber.StatusUnauthorized, dto.NewErrorResponse(ErrMsgUnauthorized))
	}

	noteID, err := strconv.ParseInt(ctx.Params("note_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(ErrMsgInvalidNoteID))
	}

	note, err := h.noteService.GetNote(requestCtx, userID, noteID)
	if err != nil {
		log.Error(requestCtx, "failed to get note", zap.Error(err))
		return errorResponse(ctx, err, fmt.Sprintf("failed to read note with id=%d", noteID))
	}

	return sendJSON(ctx, fiber.StatusOK,
		dto.NewSuccessResponse(fmt.Sprintf("success read note with id=%d", noteID), dto.NoteFromEntity(note)))
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	userID, ok := callerID(ctx)
	if !ok {
		return sendJSON(ctx, fiber.StatusUnauthorized, dto.NewErrorResponse(ErrMsgUnauthorized))
	}

	noteID, err := strconv.ParseInt(ctx.Params("note_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(ErrMsgInvalidNoteID))
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(ErrMsgInvalidRequestBody))
	}
	if err := req.Validate(); err != nil {
		log.Debug(requestCtx, "update note validation failed", zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	note, err := h.noteService.UpdateNote(requestCtx, userID, noteID, req.NewTitle, req.NewContent)
	if err != nil {
		log.Error(requestCtx, "failed to update note", zap.Error(err))
		return errorResponse(ctx, err, fmt.Sprintf("failed to update note with id=%d", noteID))
	}

	return sendJSON(ctx, fiber.StatusOK,
		dto.NewSuccessResponse(fmt.Sprintf("success update note with id=%d", noteID), dto.NoteFromEntity(note)))
}

// DeleteNote обрабатывает запрос на мягкое удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	userID, ok := callerID(ctx)
	if !ok {
		return sendJSON(ctx, fiber.StatusUnauthorized, dto.NewErrorResponse(ErrMsgUnauthorized))
	}

	noteID, err := strconv.ParseInt(ctx.Params("note_id"), 10, 64)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidNoteID, zap.Error(err))
		return sendJSON(ctx, fiber.StatusBadRequest, dto.NewErrorResponse(ErrMsgInvalidNoteID))
	}

	note, err := h.noteService.DeleteNote(requestCtx, userID, noteID)
	if err != nil {
		log.Error(requestCtx, "failed to delete note", zap.Error(err))
		return errorResponse(ctx, err, fmt.Sprintf("failed to delete note with id=%d", noteID))
	}

	return sendJSON(ctx, fiber.StatusOK,
		dto.NewSuccessResponse(fmt.Sprintf("success delete note with id=%d", noteID), dto.NoteFromEntity(note)))
}
