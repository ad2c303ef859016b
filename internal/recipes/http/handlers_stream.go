package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/daily"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

// StreamDaily streams recipe-of-the-day announcements using Server-Sent
// Events. The cached recipe for ?category= is sent first when available.
func (h *Handler) StreamDaily(c *gin.Context) {
	if h.daily == nil {
		writeError(c, domain.ErrStorageDisabled)
		return
	}

	var filter domain.Category
	if raw := c.Query("category"); raw != "" {
		cat, err := domain.ParseCategory(raw)
		if err != nil {
			writeError(c, err)
			return
		}
		filter = cat
	}

	ctx := c.Request.Context()
	events, err := h.daily.Subscribe(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "daily feed unavailable"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "streaming unsupported"})
		return
	}
	c.Status(http.StatusOK)

	if filter != "" {
		if a, err := h.daily.Cached(ctx, filter); err == nil {
			writeEvent(c, "initial", a)
		} else if !errors.Is(err, daily.ErrNotCached) {
			_ = c.Error(err)
		}
	}
	flusher.Flush()

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case a, ok := <-events:
			if !ok {
				return
			}
			if filter != "" && a.Category != filter {
				continue
			}
			writeEvent(c, "daily", a)
			flusher.Flush()
		}
	}
}

func writeEvent(c *gin.Context, event string, a daily.Announcement) {
	data, _ := json.Marshal(a)
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
}
