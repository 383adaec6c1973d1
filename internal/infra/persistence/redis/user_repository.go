// Package redis stores users in Redis. Multi-key changes run as Lua scripts so
// the username sets and the insertion order never drift from the user records.
// All keys share the configured prefix; a hash tag in it keeps them in one
// cluster slot.
package redis

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/lifecycle"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "{usersvc}:"

	// maxScriptAttempts bounds rereads when a rename or delete races another writer.
	maxScriptAttempts = 5
)

// UserRepository implements repository.UserRepository with a hash per user,
// a set of ids per username and a sorted set holding insertion order.
type UserRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	namespace uuid.UUID
	logger    *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Open connects to cfg.Addr and verifies the connection. A comma separated
// list of addresses opens a cluster client. The repository owns the client.
func Open(ctx context.Context, cfg *config.RedisConfig, namespace uuid.UUID, logger *slog.Logger) (*UserRepository, error) {
	if cfg == nil || strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redis.addr is required for the redis storage driver")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    strings.Split(cfg.Addr, ","),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to ping Redis")
	}

	return NewUserRepository(client, cfg.KeyPrefix, namespace, logger), nil
}

// NewUserRepository wraps client. An empty keyPrefix falls back to "{usersvc}:".
func NewUserRepository(client redis.UniversalClient, keyPrefix string, namespace uuid.UUID, logger *slog.Logger) *UserRepository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserRepository{
		client:    client,
		keyPrefix: keyPrefix,
		namespace: namespace,
		logger:    logger,
	}
}

func (r *UserRepository) userKeyPrefix() string { return r.keyPrefix + "user:" }
func (r *UserRepository) orderKey() string      { return r.keyPrefix + "order" }
func (r *UserRepository) seqKey() string        { return r.keyPrefix + "seq" }

func (r *UserRepository) userKey(id uuid.UUID) string {
	return r.userKeyPrefix() + id.String()
}

func (r *UserRepository) usernameKey(username string) string {
	return r.keyPrefix + "username:" + username
}

func (r *UserRepository) CreateUser(ctx context.Context, username string) (*entity.User, bool, error) {
	user := entity.NewUser(r.namespace, username)

	created, err := createUserScript.Run(ctx, r.client,
		[]string{r.userKey(user.ID), r.usernameKey(username), r.orderKey(), r.seqKey()},
		user.ID.String(), username,
	).Int()
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)

		return nil, false, domainerrors.NewDatabaseExecuteError(err, "create user")
	}
	if created == 0 {
		return nil, false, nil
	}

	return user, true, nil
}

// UpdateUser moves the user to the new username's set. Other holders of that
// username are left alone.
func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	if user == nil {
		return nil, false, nil
	}

	_, ok, err := r.withStoredUsername(ctx, user.ID, func(current string) (int, error) {
		return updateUserScript.Run(ctx, r.client,
			[]string{r.userKey(user.ID), r.usernameKey(current), r.usernameKey(user.Username)},
			user.ID.String(), current, user.Username,
		).Int()
	})
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "update user")
	}
	if !ok {
		return nil, false, nil
	}

	return user.Clone(), true, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	return r.listUsers(ctx, func(string) bool { return true })
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	username, err := r.client.HGet(ctx, r.userKey(id), "username").Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "get user")
	}

	return &entity.User{ID: id, Username: username}, true, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	username, ok, err := r.withStoredUsername(ctx, id, func(current string) (int, error) {
		return deleteUserScript.Run(ctx, r.client,
			[]string{r.userKey(id), r.usernameKey(current), r.orderKey()},
			id.String(), current,
		).Int()
	})
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "delete user")
	}
	if !ok {
		return nil, false, nil
	}

	return &entity.User{ID: id, Username: username}, true, nil
}

// FindUsersByName filters the ordered snapshot in process; Redis has no case-insensitive substring index.
func (r *UserRepository) FindUsersByName(ctx context.Context, query string) ([]*entity.User, error) {
	needle := strings.ToLower(query)

	return r.listUsers(ctx, func(username string) bool {
		return strings.Contains(strings.ToLower(username), needle)
	})
}

func (r *UserRepository) Close(_ context.Context) error {
	r.closeOnce.Do(func() {
		r.closeErr = r.client.Close()
	})

	return errors.WithStack(r.closeErr)
}

// withStoredUsername reads the username stored for id and passes it to run.
// It reads again while run reports staleUsername.
func (r *UserRepository) withStoredUsername(ctx context.Context, id uuid.UUID, run func(current string) (int, error)) (string, bool, error) {
	for range maxScriptAttempts {
		current, err := r.client.HGet(ctx, r.userKey(id), "username").Result()
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		if err != nil {
			return "", false, errors.WithStack(err)
		}

		status, err := run(current)
		if err != nil {
			return "", false, errors.WithStack(err)
		}
		if status != staleUsername {
			return current, status == 1, nil
		}
	}

	return "", false, errors.Errorf("username of user %s changed %d times while writing", id, maxScriptAttempts)
}

// listUsers reads the insertion order and then each user hash in one pipeline.
// Ids whose hash is gone by then were deleted in between and are skipped.
func (r *UserRepository) listUsers(ctx context.Context, match func(username string) bool) ([]*entity.User, error) {
	ids, err := r.client.ZRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list user ids")
	}

	users := make([]*entity.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cmds := make([]*redis.StringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGet(ctx, r.userKeyPrefix()+id, "username")
		}

		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list users")
	}

	for i, cmd := range cmds {
		username, err := cmd.Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "list users")
		}
		if !match(username) {
			continue
		}

		id, err := uuid.Parse(ids[i])
		if err != nil {
			return nil, errors.Wrapf(err, "stored user id %q", ids[i])
		}
		users = append(users, &entity.User{ID: id, Username: username})
	}

	return users, nil
}
