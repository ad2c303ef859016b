package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidSignup = errors.New("email and password are required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrEmailExists   = errors.New("email already exists")
)
