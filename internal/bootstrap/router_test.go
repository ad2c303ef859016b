package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/customizer"
	recipeservice "github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cat := catalog.Default()
	return BuildRouter(RouterDeps{
		ServiceName: "coffeecraft",
		Version:     "test",
		CORSOrigins: []string{"https://coffee.example"},
		Recipes:     recipeservice.NewRecipeService(catalog.NewSelector(cat), customizer.New()),
		CatalogSize: cat.Len(),
		Verifier:    auth.DevVerifier{},
	})
}

func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Origin", "https://coffee.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildRouter_Routes(t *testing.T) {
	r := testRouter()

	cases := []struct {
		method, path, body, token string
		want                      int
	}{
		{http.MethodGet, "/health", "", "", http.StatusOK},
		{http.MethodGet, "/healthz", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/today?category=brewing", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/random?category=espresso", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/recipes/1", "", "", http.StatusOK},
		{http.MethodPost, "/api/v1/recipes/customize", `{"preferences":"sweet","category":"espresso"}`, "", http.StatusOK},
		{http.MethodGet, "/api/v1/favorites", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/favorites", "", "uid-1", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/v1/history", "", "uid-1", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/v1/auth/signup", `{}`, "", http.StatusNotFound},
	}

	for _, tc := range cases {
		w := serve(r, tc.method, tc.path, tc.body, tc.token)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestBuildRouter_Headers(t *testing.T) {
	w := serve(testRouter(), http.MethodGet, "/api/v1/recipes", "", "")

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "https://coffee.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowOrigins)
}
