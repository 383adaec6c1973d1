// Package repotest holds the behaviour every repository.UserRepository
// implementation must show. Adapter tests call RunUserRepositoryContract with
// a constructor for a fresh, empty store.
package repotest

import (
	"context"
	"fmt"
	"testing"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SeedCount is the number of users Seed registers.
const SeedCount = 10

// NewRepoFunc returns an empty repository deriving ids in namespace.
type NewRepoFunc func(t *testing.T, namespace uuid.UUID) repository.UserRepository

// Seed registers name0..name9 and returns them in insertion order.
func Seed(t *testing.T, repo repository.UserRepository) []*entity.User {
	t.Helper()

	ctx := context.Background()
	users := make([]*entity.User, 0, SeedCount)
	for i := range SeedCount {
		user, ok, err := repo.CreateUser(ctx, fmt.Sprintf("name%d", i))
		require.NoError(t, err)
		require.True(t, ok)
		users = append(users, user)
	}

	return users
}

func usernames(users []*entity.User) []string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}

	return names
}

// RunUserRepositoryContract runs the storage contract against newRepo.
func RunUserRepositoryContract(t *testing.T, newRepo NewRepoFunc) {
	namespace := uuid.New()
	ctx := context.Background()

	t.Run("CreateUser_ExistingUsername", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		user, ok, err := repo.CreateUser(ctx, "name1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)

		all, err := repo.GetUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, SeedCount)
	})

	t.Run("CreateUser_NewUsername", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		user, ok, err := repo.CreateUser(ctx, "newuser")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, entity.NewUserID(namespace, "newuser"), user.ID)
		assert.Equal(t, "newuser", user.Username)

		got, ok, err := repo.GetUser(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, user, got)
	})

	t.Run("GetUser_Unknown", func(t *testing.T) {
		repo := newRepo(t, namespace)

		user, ok, err := repo.GetUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("GetUsers_InsertionOrder", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)

		all, err := repo.GetUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, usernames(seeded), usernames(all))
	})

	t.Run("GetUsers_Empty", func(t *testing.T) {
		repo := newRepo(t, namespace)

		all, err := repo.GetUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("DeleteUser_Twice", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)
		target := seeded[1]

		deleted, ok, err := repo.DeleteUser(ctx, target.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, target, deleted)

		_, ok, err = repo.GetUser(ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		deleted, ok, err = repo.DeleteUser(ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, deleted)

		all, err := repo.GetUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, SeedCount-1)
	})

	t.Run("FindUsersByName_CaseInsensitive", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		found, err := repo.FindUsersByName(ctx, "NAME")
		require.NoError(t, err)
		assert.Len(t, found, SeedCount)

		found, err = repo.FindUsersByName(ctx, "mE3")
		require.NoError(t, err)
		assert.Equal(t, []string{"name3"}, usernames(found))
	})

	t.Run("FindUsersByName_NonASCII", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)
		_, ok, err := repo.CreateUser(ctx, "Ärger")
		require.NoError(t, err)
		require.True(t, ok)

		found, err := repo.FindUsersByName(ctx, "ärg")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ärger"}, usernames(found))

		found, err = repo.FindUsersByName(ctx, "ÄRGER")
		require.NoError(t, err)
		assert.Equal(t, []string{"Ärger"}, usernames(found))
	})

	t.Run("FindUsersByName_NoMatch", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		found, err := repo.FindUsersByName(ctx, "zzz")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Empty(t, found)
	})

	t.Run("FindUsersByName_EmptyQueryMatchesAll", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		found, err := repo.FindUsersByName(ctx, "")
		require.NoError(t, err)
		assert.Len(t, found, SeedCount)
	})

	t.Run("FindUsersByName_LiteralPattern", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)
		_, ok, err := repo.CreateUser(ctx, "a.b%c_d")
		require.NoError(t, err)
		require.True(t, ok)

		found, err := repo.FindUsersByName(ctx, ".B%")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.b%c_d"}, usernames(found))

		found, err = repo.FindUsersByName(ctx, "n.me")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("UpdateUser_Rename", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)
		target := seeded[1]

		updated, ok, err := repo.UpdateUser(ctx, &entity.User{ID: target.ID, Username: "renamed"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, target.ID, updated.ID)
		assert.Equal(t, "renamed", updated.Username)

		got, ok, err := repo.GetUser(ctx, target.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "renamed", got.Username)

		found, err := repo.FindUsersByName(ctx, "RENAMED")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("UpdateUser_Unknown", func(t *testing.T) {
		repo := newRepo(t, namespace)
		Seed(t, repo)

		updated, ok, err := repo.UpdateUser(ctx, &entity.User{ID: uuid.New(), Username: "ghost"})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, updated)

		all, err := repo.GetUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, SeedCount)
		assert.NotContains(t, usernames(all), "ghost")
	})

	t.Run("UpdateUser_ToExistingUsername", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)

		updated, ok, err := repo.UpdateUser(ctx, &entity.User{ID: seeded[1].ID, Username: "name2"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, &entity.User{ID: seeded[1].ID, Username: "name2"}, updated)

		got, ok, err := repo.GetUser(ctx, seeded[2].ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "name2", got.Username)

		found, err := repo.FindUsersByName(ctx, "name2")
		require.NoError(t, err)
		assert.Len(t, found, 2)

		// name1 is free but its derived id is still in use
		_, ok, err = repo.CreateUser(ctx, "name1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CreateUser_UsernameHeldByRenamedUser", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)

		_, ok, err := repo.UpdateUser(ctx, &entity.User{ID: seeded[1].ID, Username: "fresh"})
		require.NoError(t, err)
		require.True(t, ok)

		user, ok, err := repo.CreateUser(ctx, "fresh")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("CreateUser_IDHeldByRenamedUser", func(t *testing.T) {
		repo := newRepo(t, namespace)
		seeded := Seed(t, repo)

		_, ok, err := repo.UpdateUser(ctx, &entity.User{ID: seeded[1].ID, Username: "renamed"})
		require.NoError(t, err)
		require.True(t, ok)

		user, ok, err := repo.CreateUser(ctx, "name1")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		repo := newRepo(t, namespace)

		require.NoError(t, repo.Close(ctx))
		require.NoError(t, repo.Close(ctx))
	})
}
