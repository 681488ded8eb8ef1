// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"noteshelf/internal/notes/adapters/http/middleware"
	"noteshelf/internal/notes/adapters/http/notes"
	"noteshelf/internal/notes/app/dto"
	"noteshelf/internal/notes/ports/api"
	"noteshelf/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, noteService api.NoteService, tokenService services.TokenService) {
	noteHandler := notes.NewHandler(noteService)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты заметок, все за auth middleware.
	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Use(middleware.NewAuthMiddleware(tokenService))
	noteRoutes.Post("/", noteHandler.CreateNote)
	noteRoutes.Get("/", noteHandler.ListNotes)
	noteRoutes.Get("/:note_id", noteHandler.GetNote)
	noteRoutes.Put("/:note_id", noteHandler.UpdateNote)
	noteRoutes.Delete("/:note_id", noteHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse("route not found"))
	})
}
