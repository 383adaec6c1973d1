// Command seed registers <prefix>0 .. <prefix>N-1 in the configured user store.
// Usernames that already exist are counted and skipped.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"usersvc/config"
	"usersvc/internal/domain/lifecycle"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	logs "usersvc/internal/infra/log"
	"usersvc/internal/infra/persistence"
	"usersvc/internal/usecase/impl"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	repo, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		if err := repo.Close(closeCtx); err != nil {
			logger.Warn("Failed to close user store", slog.Any("error", err))
		}
	}()

	result, err := seedUsers(ctx, repo, cfg.Seed)
	if err != nil {
		return err
	}

	logger.Info("Seed finished",
		slog.String("driver", cfg.Storage.Driver),
		slog.Int64("created", result.Created),
		slog.Int64("existing", result.Existing),
	)

	return nil
}

type seedResult struct {
	Created  int64
	Existing int64
}

// seedUsers registers the configured usernames with at most cfg.Workers registrations in flight.
// The first store failure cancels the remaining registrations.
func seedUsers(ctx context.Context, repo repository.UserRepository, cfg config.SeedConfig) (seedResult, error) {
	var created, existing atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(cfg.Workers, 1))

	for i := range cfg.Count {
		username := fmt.Sprintf("%s%d", cfg.Prefix, i)
		group.Go(func() error {
			_, ok, err := impl.RegisterUser(groupCtx, username, repo)
			if err != nil {
				return errors.Wrapf(err, "register %q", username)
			}
			if ok {
				created.Add(1)
			} else {
				existing.Add(1)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return seedResult{}, err
	}

	return seedResult{Created: created.Load(), Existing: existing.Load()}, nil
}
