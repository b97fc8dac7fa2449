package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the whole key/value bag.
func (h *Handler) GetSettings(c *gin.Context) {
	list, err := h.store.AllSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	c.JSON(http.StatusOK, out)
}

// PutSetting upserts one key. Values are free-form strings; the input
// sanitizer has already stripped markup.
func (h *Handler) PutSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" || len(key) > 128 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid setting key"})
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.store.PutSetting(key, body.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store setting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": body.Value})
}
