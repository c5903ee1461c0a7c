package types

import "time"

// Therapist is a directory entry with no ownership concept: any
// authenticated caller may manage therapists.
type Therapist struct {
	ID             string              `json:"id" example:"0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11"`
	Name           string              `json:"name" example:"Dr. Maria Silva"`
	Specialization string              `json:"specialization" example:"Family Therapy"`
	Country        string              `json:"country" example:"Portugal"`
	Rating         float64             `json:"rating" example:"4.5"`
	Bio            string              `json:"bio,omitempty"`
	Phone          *string             `json:"phone,omitempty" example:"+351912345678"`
	Email          *string             `json:"email,omitempty" example:"maria@clinic.example"`
	Availability   map[string][]string `json:"availability"` // weekday -> "HH:MM" slots
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type CreateTherapistRequest struct {
	Name           string              `json:"name" validate:"required,min=2"`
	Specialization string              `json:"specialization" validate:"required"`
	Country        string              `json:"country" validate:"required"`
	Rating         *float64            `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Bio            *string             `json:"bio,omitempty"`
	Phone          *string             `json:"phone,omitempty"`
	Email          *string             `json:"email,omitempty" validate:"omitempty,email"`
	Availability   map[string][]string `json:"availability" validate:"required"`
}

type UpdateTherapistRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,min=2"`
	Specialization *string             `json:"specialization,omitempty"`
	Country        *string             `json:"country,omitempty"`
	Rating         *float64            `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Bio            *string             `json:"bio,omitempty"`
	Phone          *string             `json:"phone,omitempty"`
	Email          *string             `json:"email,omitempty" validate:"omitempty,email"`
	Availability   map[string][]string `json:"availability,omitempty"`
}
