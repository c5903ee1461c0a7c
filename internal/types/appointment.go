package types

import "time"

// Appointment statuses. New appointments default to pending.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment is an owned resource: UserID is set from the authenticated
// identity at creation and never mutated afterwards.
type Appointment struct {
	ID          string    `json:"id" example:"7b2d9f4e-8a41-4f7a-bb61-2f1e3c9a5d10"`
	UserID      string    `json:"user_id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	TherapistID string    `json:"therapist_id" example:"0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11"`
	Date        string    `json:"date" example:"2025-12-25"` // YYYY-MM-DD
	Time        string    `json:"time" example:"14:00"`      // HH:MM, 24h
	Status      string    `json:"status" example:"pending"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateAppointmentRequest accepts a userId for wire compatibility with
// existing clients, but the value is discarded: the owner is always taken
// from the verified identity.
type CreateAppointmentRequest struct {
	UserID      string  `json:"userId,omitempty" swaggerignore:"true"` // ignored, owner comes from the token
	TherapistID string  `json:"therapistId" validate:"required,uuid"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateAppointmentRequest struct {
	UserID      *string `json:"userId,omitempty" swaggerignore:"true"` // ignored, owner comes from the token
	TherapistID *string `json:"therapistId,omitempty" validate:"omitempty,uuid"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
