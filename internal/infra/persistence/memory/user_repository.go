// Package memory contains an in-process implementation of the persistence layer.
// It backs local development, the default configuration and the service tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository keeps users in a map and remembers insertion order separately.
type userRepository struct {
	mu        sync.RWMutex
	namespace uuid.UUID
	users     map[uuid.UUID]*entity.User
	order     []uuid.UUID
}

// Option configures the memory repository.
type Option func(*userRepository)

// WithUsers preloads users, keeping their ids as given. Later duplicates of an id are ignored.
// Usernames are not checked against each other.
func WithUsers(users ...*entity.User) Option {
	return func(r *userRepository) {
		for _, user := range users {
			if user == nil {
				continue
			}
			if _, exists := r.users[user.ID]; exists {
				continue
			}
			r.users[user.ID] = user.Clone()
			r.order = append(r.order, user.ID)
		}
	}
}

// NewUserRepository returns an empty in-memory store deriving ids in namespace.
func NewUserRepository(namespace uuid.UUID, opts ...Option) repository.UserRepository {
	r := &userRepository{
		namespace: namespace,
		users:     make(map[uuid.UUID]*entity.User),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *userRepository) CreateUser(_ context.Context, username string) (*entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.usernameTakenLocked(username) {
		return nil, false, nil
	}

	user := entity.NewUser(r.namespace, username)
	if _, exists := r.users[user.ID]; exists {
		// id still held by a renamed user
		return nil, false, nil
	}

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)

	return user.Clone(), true, nil
}

func (r *userRepository) UpdateUser(_ context.Context, user *entity.User) (*entity.User, bool, error) {
	if user == nil {
		return nil, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.users[user.ID]
	if !exists {
		return nil, false, nil
	}
	stored.Username = user.Username

	return stored.Clone(), true, nil
}

func (r *userRepository) GetUsers(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.users[id].Clone())
	}

	return users, nil
}

func (r *userRepository) GetUser(_ context.Context, id uuid.UUID) (*entity.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, false, nil
	}

	return user.Clone(), true, nil
}

func (r *userRepository) DeleteUser(_ context.Context, id uuid.UUID) (*entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return nil, false, nil
	}

	delete(r.users, id)
	r.order = slices.DeleteFunc(r.order, func(candidate uuid.UUID) bool {
		return candidate == id
	})

	return user, true, nil
}

func (r *userRepository) FindUsersByName(_ context.Context, query string) ([]*entity.User, error) {
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]*entity.User, 0)
	for _, id := range r.order {
		user := r.users[id]
		if strings.Contains(strings.ToLower(user.Username), needle) {
			found = append(found, user.Clone())
		}
	}

	return found, nil
}

// Close is a no-op; the store lives as long as the process.
func (r *userRepository) Close(_ context.Context) error {
	return nil
}

// usernameTakenLocked reports whether any stored user has username.
func (r *userRepository) usernameTakenLocked(username string) bool {
	for _, user := range r.users {
		if user.Username == username {
			return true
		}
	}

	return false
}
