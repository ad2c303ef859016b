package http

import (
	"context"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/daily"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
)

// DailyFeed exposes cached and live recipe-of-the-day announcements.
type DailyFeed interface {
	Cached(ctx context.Context, cat domain.Category) (daily.Announcement, error)
	Subscribe(ctx context.Context) (<-chan daily.Announcement, error)
}

// Handler handles HTTP requests for recipes, favorites and history
type Handler struct {
	recipes *service.RecipeService
	daily   DailyFeed
}

// New creates a new Handler. feed may be nil when Redis is disabled.
func New(recipes *service.RecipeService, feed DailyFeed) *Handler {
	return &Handler{
		recipes: recipes,
		daily:   feed,
	}
}

type customizeRequest struct {
	Preferences string `json:"preferences"`
	Category    string `json:"category"`
}

type generateRequest struct {
	Preferences string         `json:"preferences"`
	Category    string         `json:"category"`
	BaseRecipe  *domain.Recipe `json:"baseRecipe"`
}

type saveFavoriteRequest struct {
	Recipe *domain.Recipe `json:"recipe" binding:"required"`
}
