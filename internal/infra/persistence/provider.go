// Package persistence selects the user store named by storage.driver.
package persistence

import (
	"context"
	"log/slog"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/lifecycle"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/memory"
	"usersvc/internal/infra/persistence/mongodb"
	"usersvc/internal/infra/persistence/postgres"
	"usersvc/internal/infra/persistence/redis"
	"usersvc/internal/infra/persistence/sqlite"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RepositoryParams holds dependencies for the user repository, injected by Fx
type RepositoryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository opens the configured store and closes it when the app stops.
func NewUserRepository(params RepositoryParams) (repository.UserRepository, error) {
	repo, err := Open(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closeCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			return repo.Close(closeCtx)
		},
	})

	return repo, nil
}

// Open builds the repository for cfg.Storage.Driver outside of Fx.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.UserRepository, error) {
	namespace, err := Namespace(cfg.Storage)
	if err != nil {
		return nil, err
	}

	logger.Info("Opening user store",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("namespace", namespace.String()),
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		return memory.NewUserRepository(namespace), nil

	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		repo, err := postgres.NewUserRepository(ctx, db, namespace, logger)
		if err != nil {
			if closeErr := postgres.ClosePool(db); closeErr != nil {
				logger.Warn("Failed to close PostgreSQL pool", slog.Any("error", closeErr))
			}

			return nil, err
		}

		return repo, nil

	case config.DriverMongo:
		repo, err := mongodb.Open(ctx, cfg.Mongo, namespace, mongodb.WithUserRepoLogger(logger))
		if err != nil {
			return nil, err
		}

		return repo, nil

	case config.DriverRedis:
		repo, err := redis.Open(ctx, cfg.Redis, namespace, logger)
		if err != nil {
			return nil, err
		}

		return repo, nil

	case config.DriverSQLite:
		if cfg.SQLite == nil {
			return nil, errors.New("sqlite configuration is required for the sqlite storage driver")
		}

		return sqlite.Open(ctx, cfg.SQLite.Path, namespace)

	default:
		return nil, errors.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Namespace parses storage.namespace, falling back to entity.DefaultNamespace when it is empty.
func Namespace(cfg config.StorageConfig) (uuid.UUID, error) {
	if cfg.Namespace == "" {
		return entity.DefaultNamespace, nil
	}

	namespace, err := uuid.Parse(cfg.Namespace)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid storage.namespace %q", cfg.Namespace)
	}

	return namespace, nil
}
