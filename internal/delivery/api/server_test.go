package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/config"
	"usersvc/internal/delivery/api/router"
	"usersvc/internal/delivery/api/router/handler"
	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/memory"
	mockRepo "usersvc/internal/mocks/repository"
	"usersvc/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNamespace = uuid.MustParse("3e9d2c1b-4a5f-4e6d-8c7b-9a0f1e2d3c4b")

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func newTestEcho(repo repository.UserRepository) *echo.Echo {
	return newTestEchoWithLogger(repo, slog.New(slog.DiscardHandler))
}

func newTestEchoWithLogger(repo repository.UserRepository, logger *slog.Logger) *echo.Echo {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	userHandler := handler.NewUserHandler(handler.UserHandlerParams{
		UserUC: impl.NewUserService(impl.UserServiceParams{UserRepo: repo, Logger: logger}),
		Logger: logger,
	})

	return NewEcho(cfg, logger, router.RouterParams{UserHandler: userHandler})
}

func do(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func decodeUser(t *testing.T, env envelope) *entity.User {
	t.Helper()

	var user entity.User
	require.NoError(t, json.Unmarshal(env.Data, &user))

	return &user
}

func decodeUsers(t *testing.T, env envelope) []*entity.User {
	t.Helper()

	var users []*entity.User
	require.NoError(t, json.Unmarshal(env.Data, &users))

	return users
}

func TestHealth(t *testing.T) {
	rec, env := do(t, newTestEcho(memory.NewUserRepository(testNamespace)), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDIsPropagated(t *testing.T) {
	e := newTestEcho(memory.NewUserRepository(testNamespace))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, rec.Body.String(), `"request_id":"req-42"`)
}

func TestUserLifecycle(t *testing.T) {
	e := newTestEcho(memory.NewUserRepository(testNamespace))

	rec, env := do(t, e, http.MethodPost, "/api/v1/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	alice := decodeUser(t, env)
	assert.Equal(t, entity.NewUserID(testNamespace, "alice"), alice.ID)
	assert.Equal(t, "alice", alice.Username)

	rec, env = do(t, e, http.MethodPost, "/api/v1/users", `{"username":"alice"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), env.Error.Code)

	_, _ = do(t, e, http.MethodPost, "/api/v1/users", `{"username":"Bob"}`)

	rec, env = do(t, e, http.MethodGet, "/api/v1/users/"+alice.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice, decodeUser(t, env))

	rec, env = do(t, e, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeUsers(t, env)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Bob", users[1].Username)

	rec, env = do(t, e, http.MethodGet, "/api/v1/users?q=BO", "")
	require.Equal(t, http.StatusOK, rec.Code)
	users = decodeUsers(t, env)
	require.Len(t, users, 1)
	assert.Equal(t, "Bob", users[0].Username)

	rec, env = do(t, e, http.MethodPut, "/api/v1/users/"+alice.ID.String(), `{"username":"alicia"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	renamed := decodeUser(t, env)
	assert.Equal(t, alice.ID, renamed.ID)
	assert.Equal(t, "alicia", renamed.Username)

	// renames do not check the username against other users
	rec, env = do(t, e, http.MethodPut, "/api/v1/users/"+alice.ID.String(), `{"username":"Bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	renamed = decodeUser(t, env)
	assert.Equal(t, alice.ID, renamed.ID)
	assert.Equal(t, "Bob", renamed.Username)

	rec, env = do(t, e, http.MethodPut, "/api/v1/users/"+uuid.NewString(), `{"username":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrUserNotFound.ErrorCode(), env.Error.Code)

	rec, env = do(t, e, http.MethodDelete, "/api/v1/users/"+alice.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, renamed, decodeUser(t, env))

	rec, env = do(t, e, http.MethodDelete, "/api/v1/users/"+alice.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrUserNotFound.ErrorCode(), env.Error.Code)

	rec, _ = do(t, e, http.MethodGet, "/api/v1/users/"+alice.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindUsers_NoMatchIsEmptyList(t *testing.T) {
	e := newTestEcho(memory.NewUserRepository(testNamespace))

	rec, env := do(t, e, http.MethodGet, "/api/v1/users?q=zzz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestInvalidID(t *testing.T) {
	e := newTestEcho(memory.NewUserRepository(testNamespace))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec, env := do(t, e, method, "/api/v1/users/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
		assert.Equal(t, "INVALID_ID", env.Error.Code, method)
	}

	rec, env := do(t, e, http.MethodPut, "/api/v1/users/not-a-uuid", `{"username":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func TestRegisterUser_ValidationFailed(t *testing.T) {
	e := newTestEcho(memory.NewUserRepository(testNamespace))

	rec, env := do(t, e, http.MethodPost, "/api/v1/users", `{"username":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), env.Error.Code)
	assert.Equal(t, map[string]any{"username": "required"}, env.Error.Details)

	rec, env = do(t, e, http.MethodPost, "/api/v1/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	repo := mockRepo.NewMockUserRepository(t)
	repo.EXPECT().
		GetUsers(mock.Anything).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "list users"))
	repo.EXPECT().
		CreateUser(mock.Anything, "alice").
		Return(nil, false, errors.New("unexpected"))

	e := newTestEcho(repo)

	rec, env := do(t, e, http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", env.Error.Code)
	assert.Nil(t, env.Error.Details)

	rec, env = do(t, e, http.MethodPost, "/api/v1/users", `{"username":"alice"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domainerrors.ErrInternalError.ErrorCode(), env.Error.Code)
}

func TestRegisterUser_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newTestEchoWithLogger(memory.NewUserRepository(testNamespace), logger)

	rec, _ := do(t, e, http.MethodPost, "/api/v1/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, e, http.MethodPost, "/api/v1/users", `{"username":"alice"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"Username already registered"`)
	assert.Contains(t, logs, `"username":"alice"`)
	assert.Contains(t, logs, env.Meta.RequestID)

	rec, env = do(t, e, http.MethodPost, "/api/v1/users", `{"username":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	assert.Contains(t, buf.String(), `"msg":"Failed to bind username request"`)
}
