package domain

import "time"

// User represents a Coffee Craft account.
// Firebase UID is the primary identifier
type User struct {
	FirebaseUID string                 `json:"firebase_uid" db:"firebase_uid"`
	Email       string                 `json:"email" db:"email"`
	DisplayName *string                `json:"display_name,omitempty" db:"display_name"`
	PhotoURL    *string                `json:"photo_url,omitempty" db:"photo_url"`
	Preferences map[string]interface{} `json:"preferences,omitempty" db:"preferences"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at" db:"updated_at"`
	LastLoginAt *time.Time             `json:"last_login_at,omitempty" db:"last_login_at"`
}

// SignupRequest is the data needed to register a new account
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// SyncUserRequest carries Firebase identity data to mirror locally
type SyncUserRequest struct {
	FirebaseUID string
	Email       string
	DisplayName *string
	PhotoURL    *string
	Preferences map[string]interface{}
}

// UpdateUserRequest represents data for updating a user
type UpdateUserRequest struct {
	DisplayName *string
	PhotoURL    *string
	Preferences map[string]interface{}
}
