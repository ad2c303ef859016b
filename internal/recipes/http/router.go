package http

import "github.com/gin-gonic/gin"

// RegisterCatalog registers catalog and generation routes. Callers attach
// OptionalSession upstream so signed-in users get history.
func (h *Handler) RegisterCatalog(rg *gin.RouterGroup) {
	rg.GET("/recipes", h.ListRecipes)
	rg.GET("/recipes/today", h.Today)
	rg.GET("/recipes/today/stream", h.StreamDaily)
	rg.GET("/recipes/random", h.Random)
	rg.GET("/recipes/:id", h.GetRecipe)
	rg.POST("/recipes/customize", h.Customize)
	rg.POST("/recipes/generate", h.Generate)
}

// RegisterUser registers routes that expect RequireSession upstream.
func (h *Handler) RegisterUser(rg *gin.RouterGroup) {
	rg.POST("/favorites", h.SaveFavorite)
	rg.GET("/favorites", h.ListFavorites)
	rg.GET("/favorites/:id", h.GetFavorite)
	rg.DELETE("/favorites/:id", h.DeleteFavorite)
	rg.GET("/history", h.ListHistory)
}
