package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by the session middleware
const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// Session identifies the caller of a request.
type Session struct {
	UID   string
	Email string
	Token string
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached to ctx, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok || s == nil || s.UID == "" {
		return nil, false
	}
	return s, true
}

// UserFirebaseUID extracts the Firebase UID from the Gin context
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
