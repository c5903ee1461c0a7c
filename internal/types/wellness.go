package types

import "time"

// WellnessEntry is an owned resource recording a user's self-reported state.
type WellnessEntry struct {
	ID          string    `json:"id" example:"3f1c7a9e-92b4-44d1-88aa-0d4e6f2b1c33"`
	UserID      string    `json:"user_id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	Mood        string    `json:"mood" example:"hopeful"`
	StressLevel int       `json:"stress_level" example:"4"` // 1..10
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateWellnessEntryRequest accepts a userId for wire compatibility with
// existing clients, but the value is discarded: the owner is always taken
// from the verified identity.
type CreateWellnessEntryRequest struct {
	UserID      string  `json:"userId,omitempty" swaggerignore:"true"` // ignored, owner comes from the token
	Mood        string  `json:"mood" validate:"required,oneof=happy sad anxious calm angry hopeful"`
	StressLevel int     `json:"stressLevel" validate:"required,gte=1,lte=10"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type UpdateWellnessEntryRequest struct {
	UserID      *string `json:"userId,omitempty" swaggerignore:"true"` // ignored, owner comes from the token
	Mood        *string `json:"mood,omitempty" validate:"omitempty,oneof=happy sad anxious calm angry hopeful"`
	StressLevel *int    `json:"stressLevel,omitempty" validate:"omitempty,gte=1,lte=10"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}
