// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshelf/internal/notes/app/dto"
	"noteshelf/internal/notes/ports/services"
	"noteshelf/pkg/logger"
)

// UserIDKey - ключ locals, под которым хранится идентификатор
// аутентифицированного пользователя.
const UserIDKey = "userID"

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// NewAuthMiddleware создает промежуточное ПО, которое разрешает токен в
// идентификатор пользователя. Дальше границы use case получают только user id.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return sendUnauthorized(ctx, ErrorNoAuthHeader)
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return sendUnauthorized(ctx, ErrorInvalidTokenFormat)
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokenService.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return sendUnauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(UserIDKey, userID)

		return ctx.Next()
	}
}

func sendUnauthorized(ctx fiber.Ctx, message string) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(message)); err != nil {
		return fmt.Errorf("failed to send unauthorized response: %w", err)
	}
	return nil
}
