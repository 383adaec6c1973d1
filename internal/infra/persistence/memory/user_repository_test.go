package memory_test

import (
	"context"
	"sync"
	"testing"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	"usersvc/internal/infra/persistence/memory"
	"usersvc/internal/infra/persistence/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Contract(t *testing.T) {
	repotest.RunUserRepositoryContract(t, func(_ *testing.T, namespace uuid.UUID) repository.UserRepository {
		return memory.NewUserRepository(namespace)
	})
}

func TestUserRepository_WithUsers(t *testing.T) {
	first := &entity.User{ID: uuid.New(), Username: "alice"}
	second := &entity.User{ID: uuid.New(), Username: "bob"}
	repo := memory.NewUserRepository(entity.DefaultNamespace, memory.WithUsers(first, nil, second, first))

	all, err := repo.GetUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*entity.User{first, second}, all)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(entity.DefaultNamespace)

	created, ok, err := repo.CreateUser(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)

	created.Username = "mallory"

	got, ok, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username)
}

func TestUserRepository_ConcurrentCreateSameUsername(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(entity.DefaultNamespace)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.CreateUser(ctx, "contended")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}
