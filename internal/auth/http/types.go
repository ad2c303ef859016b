package http

import "github.com/coffeecraft/coffeecraft-backend/internal/auth/service"

type Handler struct {
	authService *service.AuthService
}

func New(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type syncRequest struct {
	Email       string                 `json:"email,omitempty"`
	DisplayName *string                `json:"display_name,omitempty"`
	PhotoURL    *string                `json:"photo_url,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

type updateProfileRequest struct {
	DisplayName *string                `json:"display_name,omitempty"`
	PhotoURL    *string                `json:"photo_url,omitempty"`
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}
