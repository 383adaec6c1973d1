package handler

import (
	"log/slog"
	"net/http"

	"usersvc/internal/delivery/api/response"
	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/errors"
	"usersvc/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the /api/v1/users routes.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// requestLogger prefers the request-scoped logger installed by the logging middleware.
func (h *UserHandler) requestLogger(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// UsernameRequest is the body of both register and rename.
type UsernameRequest struct {
	Username string `json:"username" validate:"required,max=255"`
}

// RegisterUser handles POST /api/v1/users.
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req UsernameRequest
	if err := c.Bind(&req); err != nil {
		h.requestLogger(c).Warn("Failed to bind username request", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, ok, err := h.userUC.RegisterUser(c.Request().Context(), &usecase.RegisterUserInput{Username: req.Username})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !ok {
		return response.AppError(c, domainerrors.ErrUserAlreadyExists)
	}

	return response.Success(c, http.StatusCreated, user)
}

// ListUsers handles GET /api/v1/users. With a q parameter it searches by
// case-insensitive username substring instead of listing everyone.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		users []*entity.User
		err   error
	)
	if c.QueryParams().Has("q") {
		users, err = h.userUC.FindUsers(ctx, c.QueryParam("q"))
	} else {
		users, err = h.userUC.ListUsers(ctx)
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if users == nil {
		users = []*entity.User{}
	}

	return response.Success(c, http.StatusOK, users)
}

// GetUser handles GET /api/v1/users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, ok, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !ok {
		return response.AppError(c, domainerrors.ErrUserNotFound)
	}

	return response.Success(c, http.StatusOK, user)
}

// RenameUser handles PUT /api/v1/users/:id. The id is kept; only the username changes.
func (h *UserHandler) RenameUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	var req UsernameRequest
	if err := c.Bind(&req); err != nil {
		h.requestLogger(c).Warn("Failed to bind username request", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, ok, err := h.userUC.RenameUser(c.Request().Context(), &usecase.RenameUserInput{
		ID:       id,
		Username: req.Username,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !ok {
		return response.AppError(c, domainerrors.ErrUserNotFound)
	}

	return response.Success(c, http.StatusOK, user)
}

// RemoveUser handles DELETE /api/v1/users/:id and returns the removed record.
func (h *UserHandler) RemoveUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, ok, err := h.userUC.RemoveUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if !ok {
		return response.AppError(c, domainerrors.ErrUserNotFound)
	}

	return response.Success(c, http.StatusOK, user)
}
