// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	"usersvc/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RegisterUser stores a new user named username.
// It returns no result when a stored user already has the username.
func RegisterUser(ctx context.Context, username string, repo repository.UserRepository) (*entity.User, bool, error) {
	return repo.CreateUser(ctx, username)
}

// RemoveUser deletes the user with the given id and returns the removed record.
func RemoveUser(ctx context.Context, id uuid.UUID, repo repository.UserRepository) (*entity.User, bool, error) {
	return repo.DeleteUser(ctx, id)
}

// GetUser returns the user with the given id.
func GetUser(ctx context.Context, id uuid.UUID, repo repository.UserRepository) (*entity.User, bool, error) {
	return repo.GetUser(ctx, id)
}

// FindUsers returns the users whose username contains query, ignoring case.
func FindUsers(ctx context.Context, query string, repo repository.UserRepository) ([]*entity.User, error) {
	return repo.FindUsersByName(ctx, query)
}

// ListUsers returns every user in insertion order.
func ListUsers(ctx context.Context, repo repository.UserRepository) ([]*entity.User, error) {
	return repo.GetUsers(ctx)
}

// RenameUser replaces the username of the user with the given id.
// It returns no result only when the id is unknown.
func RenameUser(ctx context.Context, id uuid.UUID, username string, repo repository.UserRepository) (*entity.User, bool, error) {
	return repo.UpdateUser(ctx, &entity.User{ID: id, Username: username})
}

// userService implements the UserUsecase interface on top of one repository.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, bool, error) {
	user, ok, err := RegisterUser(ctx, input.Username, srv.userRepo)
	if err != nil {
		srv.log(ctx).Error("Failed to register user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, false, err
	}
	if !ok {
		srv.log(ctx).Info("Username already registered", slog.String("username", input.Username))

		return nil, false, nil
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()), slog.String("username", user.Username))

	return user, true, nil
}

func (srv *userService) RemoveUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	user, ok, err := RemoveUser(ctx, id, srv.userRepo)
	if err != nil {
		srv.log(ctx).Error("Failed to remove user", slog.String("userID", id.String()), slog.Any("error", err))

		return nil, false, err
	}
	if ok {
		srv.log(ctx).Info("User removed", slog.String("userID", id.String()))
	}

	return user, ok, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	srv.log(ctx).Debug("Getting user", slog.String("userID", id.String()))

	return GetUser(ctx, id, srv.userRepo)
}

func (srv *userService) FindUsers(ctx context.Context, query string) ([]*entity.User, error) {
	users, err := FindUsers(ctx, query, srv.userRepo)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Found users", slog.String("query", query), slog.Int("count", len(users)))

	return users, nil
}

func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return ListUsers(ctx, srv.userRepo)
}

func (srv *userService) RenameUser(ctx context.Context, input *usecase.RenameUserInput) (*entity.User, bool, error) {
	user, ok, err := RenameUser(ctx, input.ID, input.Username, srv.userRepo)
	if err != nil {
		srv.log(ctx).Error("Failed to rename user", slog.String("userID", input.ID.String()), slog.Any("error", err))

		return nil, false, err
	}
	if !ok {
		srv.log(ctx).Info("Rename rejected", slog.String("userID", input.ID.String()), slog.String("username", input.Username))

		return nil, false, nil
	}

	srv.log(ctx).Info("User renamed", slog.String("userID", user.ID.String()), slog.String("username", user.Username))

	return user, true, nil
}
