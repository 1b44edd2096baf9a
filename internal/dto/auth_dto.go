package dto

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Age             int    `json:"age"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Age             int       `json:"age"`
	CanBeContacted  bool      `json:"can_be_contacted"`
	CanDataBeShared bool      `json:"can_data_be_shared"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Age:             u.Age,
		CanBeContacted:  u.CanBeContacted,
		CanDataBeShared: u.CanDataBeShared,
	}
}

// UpdateProfileRequest carries only the fields a user may change on themselves.
type UpdateProfileRequest struct {
	Age             *int  `json:"age"`
	CanBeContacted  *bool `json:"can_be_contacted"`
	CanDataBeShared *bool `json:"can_data_be_shared"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
