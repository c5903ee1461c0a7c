package therapist

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

type TherapistHandlerImpl struct {
	therapistService TherapistService
	logger           *slog.Logger
}

func NewTherapistHandlerImpl(therapistService TherapistService, logger *slog.Logger) *TherapistHandlerImpl {
	return &TherapistHandlerImpl{
		therapistService: therapistService,
		logger:           logger,
	}
}

// GetTherapists godoc
// @Summary      List therapists
// @Tags         Therapists
// @Produce      json
// @Success      200 {array} types.Therapist
// @Router       /therapists [get]
func (h *TherapistHandlerImpl) GetTherapists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetTherapists"))

	therapists, err := h.therapistService.GetTherapists(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list therapists", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch therapists")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, therapists)
}

// GetTherapist godoc
// @Summary      Get therapist by ID
// @Tags         Therapists
// @Produce      json
// @Param        id path string true "Therapist ID" format(uuid)
// @Success      200 {object} types.Therapist
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Router       /therapists/{id} [get]
func (h *TherapistHandlerImpl) GetTherapist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetTherapist"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	therapist, err := h.therapistService.GetTherapist(ctx, id.String())
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Therapist not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get therapist", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch therapist")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, therapist)
}

// CreateTherapist godoc
// @Summary      Create therapist
// @Tags         Therapists
// @Accept       json
// @Produce      json
// @Param        request body types.CreateTherapistRequest true "Therapist"
// @Success      201 {object} types.Therapist
// @Failure      400 {object} types.Response "Invalid input"
// @Router       /therapists [post]
func (h *TherapistHandlerImpl) CreateTherapist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateTherapist"))

	var req types.CreateTherapistRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	therapist, err := h.therapistService.CreateTherapist(ctx, &req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create therapist", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create therapist")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, therapist)
}

// UpdateTherapist godoc
// @Summary      Update therapist
// @Tags         Therapists
// @Accept       json
// @Produce      json
// @Param        id path string true "Therapist ID" format(uuid)
// @Param        request body types.UpdateTherapistRequest true "Fields to change"
// @Success      200 {object} types.Therapist
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      404 {object} types.Response "Not found"
// @Router       /therapists/{id} [put]
func (h *TherapistHandlerImpl) UpdateTherapist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateTherapist"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	var req types.UpdateTherapistRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	therapist, err := h.therapistService.UpdateTherapist(ctx, id.String(), &req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Therapist not found")
			return
		}
		l.ErrorContext(ctx, "Failed to update therapist", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update therapist")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, therapist)
}

// DeleteTherapist godoc
// @Summary      Delete therapist
// @Tags         Therapists
// @Produce      json
// @Param        id path string true "Therapist ID" format(uuid)
// @Success      200 {object} types.Response "Confirmation"
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Router       /therapists/{id} [delete]
func (h *TherapistHandlerImpl) DeleteTherapist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteTherapist"))

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid therapist ID format")
		return
	}

	if err := h.therapistService.DeleteTherapist(ctx, id.String()); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Therapist not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete therapist", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete therapist")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "Therapist deleted successfully",
	})
}
