package auth

import (
	"context"
	"strings"
)

// DevVerifier accepts any non-empty token and uses it as the user's UID.
// Use this ONLY for development/testing, when Firebase credentials are not
// configured.
type DevVerifier struct{}

func (DevVerifier) Verify(_ context.Context, token string) (*Session, error) {
	uid := strings.TrimSpace(token)
	if uid == "" {
		return nil, ErrInvalidToken
	}
	return &Session{UID: uid, Email: uid + "@firebase.local", Token: token}, nil
}
