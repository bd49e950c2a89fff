package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

// events streams the project over Server-Sent Events: one "initial" event
// with the current document, then an "update" event after every committed
// change.
func (h *Handler) events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	// Subscribe before reading the initial state so no commit is missed.
	updates, cancel := h.store.Subscribe()
	defer cancel()

	initial, _ := json.Marshal(gin.H{"project": h.store.Get()})
	fmt.Fprintf(c.Writer, "event: initial\ndata: %s\n\n", initial)
	flusher.Flush()

	ctx := c.Request.Context()
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case p, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(gin.H{"project": p})
			if err != nil {
				h.log.Error("encode project event", zap.Error(err))
				continue
			}
			fmt.Fprintf(c.Writer, "event: update\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
