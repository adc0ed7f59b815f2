package http

import (
	"context"
	"log/slog"

	"memoapp/internal/adapter/cache"
	memorycache "memoapp/internal/adapter/cache/memory"
	rediscache "memoapp/internal/adapter/cache/redis"
	memorydb "memoapp/internal/adapter/database/memory"
	"memoapp/internal/adapter/database/postgres"
	pgrepository "memoapp/internal/adapter/database/postgres/repository"
	database "memoapp/internal/adapter/database/sqlite"
	repository "memoapp/internal/adapter/database/sqlite/repository"
	"memoapp/internal/adapter/http/handler"
	"memoapp/internal/core/port"
	"memoapp/internal/core/service"
	"memoapp/pkg/config"
)

type Container struct {
	MemoRepo    port.MemoRepository
	UserRepo    port.UserRepository
	SessionRepo port.SessionRepository

	MemoUseCase port.MemoService
	AuthUseCase port.AuthService

	MemoHandler *handler.MemoHandler
	AuthHandler *handler.AuthHandler

	closers []func() error
}

// NewContainer wires repositories, services and handlers. The backing store
// is resolved exactly once here; nothing downstream re-checks the mode.
func NewContainer(cfg *config.AppConfig, logger *config.LokiLogger) (*Container, error) {
	container := &Container{}

	memoRepo, userRepo, err := container.buildStores(cfg)

	if err != nil {
		return nil, err
	}

	cacheRepo := container.buildCache(cfg)
	sessionRepo := cache.NewSessionRepository(cacheRepo)

	memoSvc := service.NewMemoService(memoRepo)
	authSvc := service.NewAuthService(userRepo, sessionRepo)

	container.MemoRepo = memoRepo
	container.UserRepo = userRepo
	container.SessionRepo = sessionRepo
	container.MemoUseCase = memoSvc
	container.AuthUseCase = authSvc
	container.MemoHandler = handler.NewMemoHandler(memoSvc, logger)
	container.AuthHandler = handler.NewAuthHandler(authSvc)

	return container, nil
}

func (c *Container) buildStores(cfg *config.AppConfig) (port.MemoRepository, port.UserRepository, error) {
	if cfg.StoreMode == config.StoreModeMock {
		slog.Info("Using in-memory seeded store")
		return memorydb.NewSeededStore(), memorydb.NewSeededUserStore(), nil
	}

	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB()

		if err != nil {
			return nil, nil, err
		}

		c.closers = append(c.closers, func() error {
			db.Close()
			return nil
		})

		slog.Info("Using postgres store")

		return pgrepository.NewMemoRepository(db), pgrepository.NewUserRepository(db), nil
	}

	db, err := database.NewDB()

	if err != nil {
		return nil, nil, err
	}

	c.closers = append(c.closers, db.Close)

	slog.Info("Using sqlite store")

	return repository.NewMemoRepository(db), repository.NewUserRepository(db), nil
}

func (c *Container) buildCache(cfg *config.AppConfig) port.CacheRepository {
	if cfg.RedisURL != "" {
		redisRepo, err := rediscache.NewRedisRepository(context.Background(), cfg.RedisURL)

		if err == nil {
			c.closers = append(c.closers, redisRepo.Close)
			slog.Info("Using redis session store")
			return redisRepo
		}

		slog.Warn("Redis unavailable, falling back to in-process sessions", "error", err)
	}

	memoryRepo := memorycache.NewMemoryRepository()
	c.closers = append(c.closers, memoryRepo.Close)

	return memoryRepo
}

func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			slog.Error("Error closing resource", "error", err)
		}
	}
}
