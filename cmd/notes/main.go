package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteshelf/internal/notes/adapters/cache"
	httpServer "noteshelf/internal/notes/adapters/http"
	adapterspg "noteshelf/internal/notes/adapters/postgres"
	"noteshelf/internal/notes/adapters/services"
	"noteshelf/internal/notes/app"
	"noteshelf/internal/notes/config"
	"noteshelf/pkg/db/postgres"
	"noteshelf/pkg/logger"
	"noteshelf/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		db, err := postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			db.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		noteCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			db.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		repoFactory := adapterspg.NewRepositoryFactory(db)
		tokenService := services.NewJWT(cfg.JWT.SecretKey)
		noteUseCase := app.NewNoteUseCase(repoFactory.NoteRepository(), db, noteCache, cfg.Redis.DefaultTTL)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, noteUseCase, tokenService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return noteCache.Close()
			},
			// Закрытие соединения с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				db.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
