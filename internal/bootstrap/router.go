package bootstrap

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/coffeecraft/coffeecraft-backend/internal/api/http"
	"github.com/coffeecraft/coffeecraft-backend/internal/api/http/middleware"
	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	authhttp "github.com/coffeecraft/coffeecraft-backend/internal/auth/http"
	authmw "github.com/coffeecraft/coffeecraft-backend/internal/auth/middleware"
	authservice "github.com/coffeecraft/coffeecraft-backend/internal/auth/service"
	recipehttp "github.com/coffeecraft/coffeecraft-backend/internal/recipes/http"
	recipeservice "github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Logger      *zap.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Recipes     *recipeservice.RecipeService
	CatalogSize int
	Daily       recipehttp.DailyFeed

	// Auth is nil when Postgres is disabled; account routes are not mounted.
	Auth     *authservice.AuthService
	Verifier auth.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.CatalogSize, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	recipeHandler := recipehttp.New(dep.Recipes, dep.Daily)

	public := api.Group("")
	public.Use(authmw.OptionalSession(dep.Verifier))
	recipeHandler.RegisterCatalog(public)

	private := api.Group("")
	private.Use(authmw.RequireSession(dep.Verifier))
	recipeHandler.RegisterUser(private)

	if dep.Auth != nil {
		authHandler := authhttp.New(dep.Auth)
		authHandler.RegisterPublic(api.Group("/auth"))

		authGroup := api.Group("/auth")
		authGroup.Use(authmw.RequireSession(dep.Verifier))
		authHandler.Register(authGroup)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
