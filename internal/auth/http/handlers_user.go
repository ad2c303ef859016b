package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	"github.com/coffeecraft/coffeecraft-backend/internal/auth/domain"
	"github.com/coffeecraft/coffeecraft-backend/internal/auth/service"
)

// Signup creates a confirmed account
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &domain.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignup), errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, domain.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, service.ErrSignupUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "signup failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUserByFirebaseUID(c.Request.Context(), firebaseUID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// SyncUser mirrors the Firebase user into PostgreSQL. Called after sign-in;
// the JSON body is optional.
func (h *Handler) SyncUser(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var body syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid JSON body"})
			return
		}
	}

	// body > token > fallback
	email := body.Email
	if email == "" {
		email = c.GetString(auth.CtxEmail)
	}
	if email == "" {
		email = firebaseUID + "@firebase.local"
	}

	user, err := h.authService.SyncUser(c.Request.Context(), &domain.SyncUserRequest{
		FirebaseUID: firebaseUID,
		Email:       email,
		DisplayName: body.DisplayName,
		PhotoURL:    body.PhotoURL,
		Preferences: body.Preferences,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to sync user"})
		return
	}

	_ = h.authService.RecordLogin(c.Request.Context(), firebaseUID)

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile updates the user's profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	firebaseUID := auth.UserFirebaseUID(c)
	if firebaseUID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), firebaseUID, &domain.UpdateUserRequest{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Preferences: req.Preferences,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
