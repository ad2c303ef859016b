package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `
		SELECT firebase_uid, email, display_name, photo_url, preferences,
		       created_at, updated_at, last_login_at
		FROM users
		WHERE firebase_uid = $1
	`

	var user domain.User
	var preferencesJSON []byte
	var displayName, photoURL sql.NullString
	var lastLoginAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&user.FirebaseUID,
		&user.Email,
		&displayName,
		&photoURL,
		&preferencesJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	// Handle nullable fields
	if displayName.Valid {
		user.DisplayName = &displayName.String
	}
	if photoURL.Valid {
		user.PhotoURL = &photoURL.String
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	user.Preferences = make(map[string]interface{})
	if len(preferencesJSON) > 0 {
		if err := json.Unmarshal(preferencesJSON, &user.Preferences); err != nil {
			user.Preferences = make(map[string]interface{})
		}
	}

	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (firebase_uid, email, display_name, photo_url, preferences)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		user.FirebaseUID,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
		preferencesJSON(user.Preferences),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// Update updates user information
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, display_name = $3, photo_url = $4, preferences = $5, updated_at = NOW()
		WHERE firebase_uid = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.FirebaseUID,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
		preferencesJSON(user.Preferences),
	).Scan(&user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

// UpdateLastLogin updates the last login timestamp
func (r *UserRepository) UpdateLastLogin(ctx context.Context, uid string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE firebase_uid = $1`, uid)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func preferencesJSON(prefs map[string]interface{}) []byte {
	if prefs == nil {
		return []byte("{}")
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return []byte("{}")
	}
	return data
}
