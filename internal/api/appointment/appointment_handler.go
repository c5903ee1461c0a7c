package appointment

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

type AppointmentHandlerImpl struct {
	appointmentService AppointmentService
	logger             *slog.Logger
}

func NewAppointmentHandlerImpl(appointmentService AppointmentService, logger *slog.Logger) *AppointmentHandlerImpl {
	return &AppointmentHandlerImpl{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

func parseIDParam(r *http.Request) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// GetAppointments godoc
// @Summary      List appointments
// @Description  Returns all appointments.
// @Tags         Appointments
// @Produce      json
// @Success      200 {array} types.Appointment
// @Router       /appointments [get]
func (h *AppointmentHandlerImpl) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAppointments"))

	appointments, err := h.appointmentService.GetAppointments(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list appointments", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, appointments)
}

// GetAppointmentsByUser godoc
// @Summary      List appointments for a user
// @Tags         Appointments
// @Produce      json
// @Param        userId path string true "User ID" format(uuid)
// @Success      200 {array} types.Appointment
// @Failure      400 {object} types.Response "Invalid ID"
// @Router       /appointments/user/{userId} [get]
func (h *AppointmentHandlerImpl) GetAppointmentsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAppointmentsByUser"))

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	appointments, err := h.appointmentService.GetAppointmentsByUser(ctx, userID.String())
	if err != nil {
		l.ErrorContext(ctx, "Failed to list appointments for user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, appointments)
}

// GetAppointment godoc
// @Summary      Get appointment by ID
// @Tags         Appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} types.Appointment
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      404 {object} types.Response "Not found"
// @Router       /appointments/{id} [get]
func (h *AppointmentHandlerImpl) GetAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAppointment"))

	id, err := parseIDParam(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Appointment not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get appointment", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch appointment")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, appointment)
}

// CreateAppointment godoc
// @Summary      Create appointment
// @Description  Creates an appointment owned by the authenticated user. The
// @Description  owner is taken from the bearer token, never from the body.
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        request body types.CreateAppointmentRequest true "Appointment"
// @Success      201 {object} types.Appointment
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /appointments [post]
func (h *AppointmentHandlerImpl) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "CreateAppointment"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.CreateAppointmentRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(ctx, ownerID, &req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Referenced therapist does not exist")
			return
		}
		l.ErrorContext(ctx, "Failed to create appointment", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, appointment)
}

// UpdateAppointment godoc
// @Summary      Update appointment
// @Description  Applies a partial update to an appointment the caller owns.
// @Description  Appointments of other users read as not found.
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Param        request body types.UpdateAppointmentRequest true "Fields to change"
// @Success      200 {object} types.Appointment
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /appointments/{id} [put]
func (h *AppointmentHandlerImpl) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "UpdateAppointment"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var req types.UpdateAppointmentRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if fieldErrors := validation.Struct(&req); fieldErrors != nil {
		api.ValidationErrorResponse(w, r, fieldErrors)
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(ctx, id, ownerID, &req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Appointment not found")
			return
		}
		l.ErrorContext(ctx, "Failed to update appointment", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, appointment)
}

// DeleteAppointment godoc
// @Summary      Delete appointment
// @Description  Deletes an appointment the caller owns. Appointments of
// @Description  other users read as not found.
// @Tags         Appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} types.Response "Confirmation"
// @Failure      400 {object} types.Response "Invalid ID"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not found"
// @Security     BearerAuth
// @Router       /appointments/{id} [delete]
func (h *AppointmentHandlerImpl) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "DeleteAppointment"))

	ownerID, ok := auth.GetUserIDFromContext(ctx)
	if !ok || ownerID == "" {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := h.appointmentService.DeleteAppointment(ctx, id, ownerID); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Appointment not found")
			return
		}
		l.ErrorContext(ctx, "Failed to delete appointment", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.Response{
		Success: true,
		Message: "Appointment deleted successfully",
	})
}
