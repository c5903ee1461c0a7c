package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
	"github.com/globalcounseling/counseling-api/internal/validation"
)

type UserHandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

func NewUserHandlerImpl(userService UserService, logger *slog.Logger) *UserHandlerImpl {
	return &UserHandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetUsers godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200 {array} types.UserAccount
// @Router       /users [get]
func (h *UserHandlerImpl) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUsers"))

	users, err := h.userService.GetUsers(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} types.UserAccount
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Router       /users/{id} [get]
func (h *UserHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetUser"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUser(ctx, id.String())
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body types.CreateUserRequest true "User"
// @Success      201 {object} types.UserAccount
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      409 {object} types.Response "Email already registered"
// @Router       /users [post]
func (h *UserHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateUser"))

	var req types.CreateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	user, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "An account with this email already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, user)
}

// UpdateUser godoc
// @Summary      Update user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Param        request body types.UpdateUserRequest true "Fields to change"
// @Success      200 {object} types.UserAccount
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      404 {object} types.Response "Not found"
// @Failure      409 {object} types.Response "Email already registered"
// @Router       /users/{id} [put]
func (h *UserHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateUser"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req types.UpdateUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	user, err := h.userService.UpdateUser(ctx, id.String(), &req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "An account with this email already exists")
			return
		}
		l.ErrorContext(ctx, "Failed to update user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      Delete user
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} types.Response "Confirmation"
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Failure      409 {object} types.Response "Dependent records exist"
// @Router       /users/{id} [delete]
func (h *UserHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteUser"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.userService.DeleteUser(ctx, id.String()); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, api.ErrConflict) {
			api.ErrorResponse(w, r, http.StatusConflict, "User still has appointments or wellness entries")
			return
		}
		l.ErrorContext(ctx, "Failed to delete user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "User deleted successfully",
	})
}
