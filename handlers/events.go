package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetspace/events"
)

// EventsHandler streams change notifications over server-sent events
// so clients refetch only what actually changed.
type EventsHandler struct {
	Bus *events.Bus
}

// Stream subscribes the client to the bus. An optional ?kind= query
// narrows the stream to one event kind.
func (h *EventsHandler) Stream(c *gin.Context) {
	var kinds []events.Kind
	if raw := c.Query("kind"); raw != "" {
		kinds = append(kinds, events.Kind(raw))
	}

	// The capability check has to precede any header or status write,
	// otherwise the error response would ride on a committed 200.
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	ch, unsubscribe := h.Bus.Subscribe(kinds...)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Kind, payload)
			flusher.Flush()
		}
	}
}
