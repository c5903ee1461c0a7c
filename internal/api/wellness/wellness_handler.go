package wellness

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/api/auth"
	"github.com/globalcounseling/counseling-api/internal/types"
	"github.com/globalcounseling/counseling-api/internal/validation"
)

type WellnessHandlerImpl struct {
	wellnessService WellnessService
	logger          *slog.Logger
}

func NewWellnessHandlerImpl(wellnessService WellnessService, logger *slog.Logger) *WellnessHandlerImpl {
	return &WellnessHandlerImpl{
		wellnessService: wellnessService,
		logger:          logger,
	}
}

// GetEntries godoc
// @Summary      List wellness entries
// @Tags         Wellness
// @Produce      json
// @Success      200 {array} types.WellnessEntry
// @Router       /wellness [get]
func (h *WellnessHandlerImpl) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetEntries"))

	entries, err := h.wellnessService.GetEntries(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list wellness entries", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch wellness entries")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, entries)
}

// GetEntriesByUser godoc
// @Summary      List wellness entries for a user
// @Tags         Wellness
// @Produce      json
// @Param        userId path string true "User ID" format(uuid)
// @Success      200 {array} types.WellnessEntry
// @Failure      400 {object} types.Response "Invalid ID"
// @Router       /wellness/user/{userId} [get]
func (h *WellnessHandlerImpl) GetEntriesByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetEntriesByUser"))

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	entries, err := h.wellnessService.GetEntriesByUser(ctx, userID.String())
	if err != nil {
		l.ErrorContext(ctx, "Failed to list wellness entries for user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch wellness entries")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, entries)
}

// GetEntry godoc
// @Summary      Get wellness entry by ID
// @Tags         Wellness
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} types.WellnessEntry
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Router       /wellness/{id} [get]
func (h *WellnessHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetEntry"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	entry, err := h.wellnessService.GetEntry(ctx, id.String())
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Wellness entry not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get wellness entry", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch wellness entry")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, entry)
}

// CreateEntry godoc
// @Summary      Create wellness entry
// @Description  Records an entry owned by the authenticated user.
// @Tags         Wellness
// @Accept       json
// @Produce      json
// @Param        request body types.CreateWellnessEntryRequest true "Entry"
// @Success      201 {object} types.WellnessEntry
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /wellness [post]
func (h *WellnessHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateEntry"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.CreateWellnessEntryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	entry, err := h.wellnessService.CreateEntry(ctx, ownerID, &req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create wellness entry", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create wellness entry")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary      Update wellness entry
// @Description  Applies a partial update to an entry the caller owns.
// @Description  Entries of other users read as not found.
// @Tags         Wellness
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Param        request body types.UpdateWellnessEntryRequest true "Fields to change"
// @Success      200 {object} types.WellnessEntry
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /wellness/{id} [put]
func (h *WellnessHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateEntry"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var req types.UpdateWellnessEntryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	entry, err := h.wellnessService.UpdateEntry(ctx, id.String(), ownerID, &req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Wellness entry not found")
			return
		}
		l.ErrorContext(ctx, "Failed to update wellness entry", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update wellness entry")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary      Delete wellness entry
// @Description  Deletes an entry the caller owns. Entries of other users
// @Description  read as not found.
// @Tags         Wellness
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} types.Response "Confirmation"
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /wellness/{id} [delete]
func (h *WellnessHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteEntry"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	if err := h.wellnessService.DeleteEntry(ctx, id.String(), ownerID); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Wellness entry not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete wellness entry", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete wellness entry")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "Wellness entry deleted successfully",
	})
}
