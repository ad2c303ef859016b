package auth

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier turns a bearer token into a Session.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Session, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	s := &Session{UID: decoded.UID, Token: token}
	if email, ok := decoded.Claims["email"].(string); ok {
		s.Email = email
	}
	return s, nil
}
