package types

import "time"

// UserAccount represents an account in the directory. An account may exist
// without an external identity (GoogleID is nil) and gain one later when a
// provider login matches its email.
type UserAccount struct {
	ID        string    `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"`
	GoogleID  *string   `json:"google_id,omitempty" example:"109284736482736482736"`
	Name      string    `json:"name" example:"Jane Doe"`
	Email     string    `json:"email" example:"jane.doe@example.com"` // Unique across accounts.
	Avatar    *string   `json:"avatar,omitempty" example:"https://lh3.googleusercontent.com/a/photo.jpg"`
	Role      string    `json:"role" example:"user"` // 'user' or 'admin'.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest is the payload for direct account creation.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Email    string  `json:"email" validate:"required,email"`
	GoogleID *string `json:"googleId,omitempty" validate:"omitempty,min=1"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,uri"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest carries the mutable account fields. Nil means unchanged.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,uri"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}
