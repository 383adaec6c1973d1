// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"usersvc/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the storage operations for users.
//
// Expected business outcomes (unknown id, username already registered) are reported
// with ok == false and a nil error. A non-nil error always means the backing
// store failed.
type UserRepository interface {
	// CreateUser stores a new user with an id derived from username.
	// ok is false when the username (or the id derived from it) is already taken.
	CreateUser(ctx context.Context, username string) (user *entity.User, ok bool, err error)

	// UpdateUser replaces the username stored for user.ID.
	// ok is false only when the id is unknown. Usernames are not checked for
	// uniqueness here, so a rename may reuse a name another user holds.
	UpdateUser(ctx context.Context, user *entity.User) (updated *entity.User, ok bool, err error)

	// GetUsers returns every user in insertion order.
	GetUsers(ctx context.Context) ([]*entity.User, error)

	// GetUser retrieves a single user by id.
	GetUser(ctx context.Context, id uuid.UUID) (user *entity.User, ok bool, err error)

	// DeleteUser removes the user and returns the removed record.
	DeleteUser(ctx context.Context, id uuid.UUID) (deleted *entity.User, ok bool, err error)

	// FindUsersByName returns users whose username contains query, ignoring case.
	// An empty query matches every user. No match yields an empty slice.
	FindUsersByName(ctx context.Context, query string) ([]*entity.User, error)

	// Close releases the resources held by the repository. Calling it more than once is a no-op.
	Close(ctx context.Context) error
}
