package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitfunnel/site/tracking"
)

type eventRequest struct {
	Event string          `json:"event" binding:"required"`
	Data  tracking.Detail `json:"data"`
}

type EventHandlers struct {
	Tracker *tracking.Tracker
}

func NewEventHandlers(t *tracking.Tracker) *EventHandlers {
	return &EventHandlers{Tracker: t}
}

// TrackEvent handles POST /api/events, the browser side of the event tracker.
func (h *EventHandlers) TrackEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	event, ok := tracking.ParseEvent(req.Event)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event: " + req.Event})
		return
	}

	h.Tracker.Track(c.Request.Context(), event, req.Data)
	c.Status(http.StatusAccepted)
}
