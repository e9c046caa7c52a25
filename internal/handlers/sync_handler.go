package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SyncNotion handles POST /api/sync/notion
// Pushes a one-way copy of all three tables into the configured Notion
// databases and reports per-table counts.
func SyncNotion(c *gin.Context) {
	if NotionMirror == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Notion is not configured"})
		return
	}

	counts, err := NotionMirror.MirrorAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
