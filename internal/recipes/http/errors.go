package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

// writeError maps service errors onto status codes with a
// {"success":false,"error":...} body.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidRecipe),
		errors.Is(err, domain.ErrNilRecipe):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmptyCatalog),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrStorageDisabled):
		status, msg = http.StatusServiceUnavailable, err.Error()
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}
