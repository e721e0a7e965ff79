package response

import (
	"github.com/google/uuid"
)

type SignupResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

type LoginResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"access_token"`
}
