package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
)

type stubVerifier map[string]string

func (v stubVerifier) Verify(_ context.Context, token string) (*auth.Session, error) {
	uid, ok := v[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Session{UID: uid, Email: uid + "@example.com", Token: token}, nil
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		s, ok := auth.SessionFrom(c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"uid": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": s.UID, "gin_uid": auth.UserFirebaseUID(c), "email": c.GetString(auth.CtxEmail)})
	})
	return r
}

func doGet(r http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireSession(t *testing.T) {
	r := newRouter(RequireSession(stubVerifier{"good": "uid-1"}))

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"missing authorization token"}`, w.Body.String())

	w = doGet(r, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")

	w = doGet(r, "Basic good")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"uid-1","gin_uid":"uid-1","email":"uid-1@example.com"}`, w.Body.String())
}

func TestOptionalSession(t *testing.T) {
	r := newRouter(OptionalSession(stubVerifier{"good": "uid-1"}))

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":""}`, w.Body.String())

	w = doGet(r, "Bearer bad")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":""}`, w.Body.String())

	w = doGet(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
}
