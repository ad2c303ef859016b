package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts routes that need no session.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
}

// Register mounts routes that expect RequireSession upstream.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.UpdateProfile)
	rg.POST("/sync", h.SyncUser)
}
