package impl

import (
	"context"
	"testing"

	"usersvc/internal/domain/entity"
	mockRepo "usersvc/internal/mocks/repository"
	"usersvc/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser_ExistingUsername(t *testing.T) {
	repo, _ := newSeededRepository(t)
	ctx := context.Background()

	user, ok, err := RegisterUser(ctx, "name0", repo)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)

	users, err := ListUsers(ctx, repo)
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestRegisterUser_NewUsername(t *testing.T) {
	repo, _ := newSeededRepository(t)
	ctx := context.Background()

	user, ok, err := RegisterUser(ctx, "name10", repo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "name10", user.Username)
	assert.Equal(t, uuid.NewSHA1(testNamespace, []byte("name10")), user.ID)

	got, ok, err := GetUser(ctx, user.ID, repo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestRemoveUser_Twice(t *testing.T) {
	repo, seeded := newSeededRepository(t)
	ctx := context.Background()
	id := entity.NewUserID(testNamespace, "name1")

	removed, ok, err := RemoveUser(ctx, id, repo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seeded[1], removed)

	removed, ok, err = RemoveUser(ctx, id, repo)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, removed)
}

func TestGetUser_Unknown(t *testing.T) {
	repo, _ := newSeededRepository(t)

	user, ok, err := GetUser(context.Background(), uuid.New(), repo)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestFindUsers(t *testing.T) {
	repo, seeded := newSeededRepository(t)
	ctx := context.Background()

	found, err := FindUsers(ctx, "NAME", repo)
	require.NoError(t, err)
	assert.Equal(t, seeded, found)

	found, err = FindUsers(ctx, "zzz", repo)
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestRenameUser(t *testing.T) {
	repo, seeded := newSeededRepository(t)
	ctx := context.Background()

	renamed, ok, err := RenameUser(ctx, seeded[2].ID, "alice", repo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seeded[2].ID, renamed.ID)
	assert.Equal(t, "alice", renamed.Username)

	// Renames may share a username; only registration checks it.
	renamed, ok, err = RenameUser(ctx, seeded[3].ID, "alice", repo)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, seeded[3].ID, renamed.ID)

	found, err := FindUsers(ctx, "ALICE", repo)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, ok, err = RegisterUser(ctx, "alice", repo)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = RenameUser(ctx, uuid.New(), "bob", repo)
	require.NoError(t, err)
	assert.False(t, ok)
}

// The free functions must pass results through unchanged, including hard faults.
func TestFreeFunctions_Delegate(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser(testNamespace, "carol")
	storeErr := errors.New("connection reset")

	t.Run("RegisterUser", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().CreateUser(ctx, "carol").Return(user, true, nil).Once()

		got, ok, err := RegisterUser(ctx, "carol", repo)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Same(t, user, got)
	})

	t.Run("RemoveUser", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().DeleteUser(ctx, user.ID).Return(nil, false, storeErr).Once()

		_, ok, err := RemoveUser(ctx, user.ID, repo)
		assert.False(t, ok)
		assert.Same(t, storeErr, err)
	})

	t.Run("GetUser", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().GetUser(ctx, user.ID).Return(nil, false, nil).Once()

		got, ok, err := GetUser(ctx, user.ID, repo)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("FindUsers", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().FindUsersByName(ctx, "ca").Return([]*entity.User{user}, nil).Once()

		got, err := FindUsers(ctx, "ca", repo)
		require.NoError(t, err)
		assert.Equal(t, []*entity.User{user}, got)
	})

	t.Run("ListUsers", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().GetUsers(ctx).Return(nil, storeErr).Once()

		_, err := ListUsers(ctx, repo)
		assert.Same(t, storeErr, err)
	})

	t.Run("RenameUser", func(t *testing.T) {
		repo := mockRepo.NewMockUserRepository(t)
		repo.EXPECT().
			UpdateUser(ctx, &entity.User{ID: user.ID, Username: "dave"}).
			Return(&entity.User{ID: user.ID, Username: "dave"}, true, nil).
			Once()

		got, ok, err := RenameUser(ctx, user.ID, "dave", repo)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "dave", got.Username)
	})
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *mockRepo.MockUserRepository
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)

	return userServiceFixtures{
		service: NewUserService(UserServiceParams{
			UserRepo: userRepo,
			Logger:   newDiscardLogger(),
		}),
		userRepo: userRepo,
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser(testNamespace, "erin")

	fx.userRepo.EXPECT().CreateUser(ctx, "erin").Return(user, true, nil)

	got, ok, err := fx.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "erin"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, user, got)
}

func TestUserService_RegisterUser_AlreadyExists(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().CreateUser(ctx, "erin").Return(nil, false, nil)

	got, ok, err := fx.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "erin"})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestUserService_RegisterUser_StoreError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	storeErr := errors.New("disk full")

	fx.userRepo.EXPECT().CreateUser(ctx, "erin").Return(nil, false, storeErr)

	_, ok, err := fx.service.RegisterUser(ctx, &usecase.RegisterUserInput{Username: "erin"})

	assert.False(t, ok)
	assert.ErrorIs(t, err, storeErr)
}

func TestUserService_RemoveUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().DeleteUser(ctx, id).Return(nil, false, nil)

	got, ok, err := fx.service.RemoveUser(ctx, id)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestUserService_RenameUser_UnknownID(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.userRepo.EXPECT().UpdateUser(ctx, &entity.User{ID: id, Username: "nobody"}).Return(nil, false, nil)

	got, ok, err := fx.service.RenameUser(ctx, &usecase.RenameUserInput{ID: id, Username: "nobody"})

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestUserService_Queries(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := entity.NewUser(testNamespace, "frank")

	fx.userRepo.EXPECT().GetUser(ctx, user.ID).Return(user, true, nil)
	fx.userRepo.EXPECT().FindUsersByName(ctx, "FR").Return([]*entity.User{user}, nil)
	fx.userRepo.EXPECT().GetUsers(ctx).Return([]*entity.User{user}, nil)

	got, ok, err := fx.service.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, user, got)

	found, err := fx.service.FindUsers(ctx, "FR")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	all, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
