package impl

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	"usersvc/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testNamespace = uuid.MustParse("0b3c8f1e-2d4a-4f6b-9c8d-7e6f5a4b3c2d")

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSeededRepository returns a memory store holding name0..name9.
func newSeededRepository(t *testing.T) (repository.UserRepository, []*entity.User) {
	t.Helper()

	users := make([]*entity.User, 0, 10)
	for i := range 10 {
		users = append(users, entity.NewUser(testNamespace, fmt.Sprintf("name%d", i)))
	}
	repo := memory.NewUserRepository(testNamespace, memory.WithUsers(users...))

	all, err := repo.GetUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, all, len(users))

	return repo, users
}
