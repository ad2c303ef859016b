package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/service"
)

const dateLayout = "2006-01-02"

// ListRecipes returns the catalog, optionally filtered by ?category=
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes})
}

// Today returns the recipe of the day. ?date=YYYY-MM-DD selects another
// local calendar day.
func (h *Handler) Today(c *gin.Context) {
	var at time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date must be YYYY-MM-DD"})
			return
		}
		at = parsed
	}

	recipe, err := h.recipes.Today(c.Query("category"), at)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// Random returns a random recipe from ?category=
func (h *Handler) Random(c *gin.Context) {
	recipe, err := h.recipes.Random(c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// GetRecipe returns a catalog recipe by id
func (h *Handler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// Customize tailors a random recipe of the requested category
func (h *Handler) Customize(c *gin.Context) {
	var req customizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	sess, _ := auth.SessionFrom(c.Request.Context())
	res, err := h.recipes.Customize(c.Request.Context(), sess, req.Preferences, req.Category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": res.Recipe, "source": res.Source})
}

// Generate enriches a base recipe with a flavor profile
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	sess, _ := auth.SessionFrom(c.Request.Context())
	recipe, err := h.recipes.Generate(c.Request.Context(), sess, service.GenerateRequest{
		Preferences: req.Preferences,
		Category:    req.Category,
		BaseRecipe:  req.BaseRecipe,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

// SaveFavorite stores a recipe for the signed-in user
func (h *Handler) SaveFavorite(c *gin.Context) {
	var req saveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "recipe is required"})
		return
	}

	sess, _ := auth.SessionFrom(c.Request.Context())
	fav, err := h.recipes.SaveFavorite(c.Request.Context(), sess, *req.Recipe)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "favorite": fav})
}

// ListFavorites returns the signed-in user's favorites, newest first
func (h *Handler) ListFavorites(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())
	favorites, err := h.recipes.ListFavorites(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favorites})
}

// GetFavorite returns one of the signed-in user's favorites
func (h *Handler) GetFavorite(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())
	fav, err := h.recipes.GetFavorite(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "favorite": fav})
}

// DeleteFavorite removes one of the signed-in user's favorites
func (h *Handler) DeleteFavorite(c *gin.Context) {
	sess, _ := auth.SessionFrom(c.Request.Context())
	if err := h.recipes.DeleteFavorite(c.Request.Context(), sess, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListHistory returns the signed-in user's generated recipes. ?limit=
// defaults to 50.
func (h *Handler) ListHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	sess, _ := auth.SessionFrom(c.Request.Context())
	history, err := h.recipes.History(c.Request.Context(), sess, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}
