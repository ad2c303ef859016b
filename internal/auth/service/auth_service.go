package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth/domain"
)

// UserStore persists local user rows.
type UserStore interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, uid string) error
}

// UserCreator creates identity-provider accounts. *auth.Client satisfies it.
type UserCreator interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

type AuthService struct {
	users   UserStore
	creator UserCreator
}

// NewAuthService creates an AuthService. creator may be nil, in which case
// Signup is unavailable.
func NewAuthService(users UserStore, creator UserCreator) *AuthService {
	return &AuthService{
		users:   users,
		creator: creator,
	}
}

var ErrSignupUnavailable = errors.New("signup is not configured")

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (s *AuthService) GetUserByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return s.users.GetByFirebaseUID(ctx, uid)
}

// Signup registers a confirmed account with the identity provider and
// creates its local row.
func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, error) {
	if s.creator == nil {
		return nil, ErrSignupUnavailable
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidSignup
	}
	if len(req.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(req.Password).
		EmailVerified(true)
	name := strings.TrimSpace(req.Name)
	if name != "" {
		params = params.DisplayName(name)
	}

	record, err := s.creator.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create firebase user: %w", err)
	}

	user := &domain.User{
		FirebaseUID: record.UID,
		Email:       email,
		Preferences: make(map[string]interface{}),
	}
	if name != "" {
		user.DisplayName = &name
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user row: %w", err)
	}
	return user, nil
}

// SyncUser creates or updates a user from Firebase Auth data
func (s *AuthService) SyncUser(ctx context.Context, req *domain.SyncUserRequest) (*domain.User, error) {
	existing, err := s.users.GetByFirebaseUID(ctx, req.FirebaseUID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if existing != nil {
		// Keep stored values for anything the request leaves out
		if req.Email != "" {
			existing.Email = req.Email
		}
		if req.DisplayName != nil {
			existing.DisplayName = req.DisplayName
		}
		if req.PhotoURL != nil {
			existing.PhotoURL = req.PhotoURL
		}
		mergePreferences(existing, req.Preferences)

		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	user := &domain.User{
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Preferences: make(map[string]interface{}),
	}
	mergePreferences(user, req.Preferences)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser updates user information
func (s *AuthService) UpdateUser(ctx context.Context, uid string, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.users.GetByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = req.PhotoURL
	}
	mergePreferences(user, req.Preferences)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RecordLogin updates the last login timestamp
func (s *AuthService) RecordLogin(ctx context.Context, uid string) error {
	return s.users.UpdateLastLogin(ctx, uid)
}

// mergePreferences adds prefs to the user's preferences without dropping
// existing keys.
func mergePreferences(user *domain.User, prefs map[string]interface{}) {
	if len(prefs) == 0 {
		return
	}
	if user.Preferences == nil {
		user.Preferences = make(map[string]interface{})
	}
	for k, v := range prefs {
		user.Preferences[k] = v
	}
}
