package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminWebhookEvent struct {
	ID              uint       `json:"id"`
	StripeEventID   string     `json:"stripe_event_id"`
	Type            string     `json:"type"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `json:"processing_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Payload         string     `json:"payload"`
}

// ListWebhookEvents is the dead-letter surface: ?failed=1 narrows to events
// whose processing recorded an error even though the delivery was
// acknowledged. The stored payload makes them replayable by hand.
func (h *Handler) ListWebhookEvents(c *gin.Context) {
	onlyFailed := c.Query("failed") == "1" || c.Query("failed") == "true"

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	events, err := h.store.WebhookEvents(onlyFailed, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load webhook events"})
		return
	}

	out := make([]AdminWebhookEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, AdminWebhookEvent{
			ID:              ev.ID,
			StripeEventID:   ev.StripeEventID,
			Type:            ev.Type,
			ProcessedAt:     ev.ProcessedAt,
			ProcessingError: ev.ProcessingError,
			CreatedAt:       ev.CreatedAt,
			Payload:         ev.PayloadJSON,
		})
	}
	c.JSON(http.StatusOK, out)
}
