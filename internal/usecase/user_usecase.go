// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"usersvc/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Username string
}

// RenameUserInput replaces the username of an existing user. The id is kept.
type RenameUserInput struct {
	ID       uuid.UUID
	Username string
}

// UserUsecase defines the user operations the delivery layer depends on.
//
// Every lookup reports "no result" as ok == false with a nil error; the
// usecase never turns it into an error. Translating it into a status code is
// the caller's job.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (user *entity.User, ok bool, err error)
	RemoveUser(ctx context.Context, id uuid.UUID) (user *entity.User, ok bool, err error)
	GetUser(ctx context.Context, id uuid.UUID) (user *entity.User, ok bool, err error)
	FindUsers(ctx context.Context, query string) ([]*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	RenameUser(ctx context.Context, input *RenameUserInput) (user *entity.User, ok bool, err error)
}
