package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Backup handles GET /api/backup
// Streams the raw database file. Only meaningful on the SQLite backend; a
// hosted Postgres database has its own backup story. The route is gated by
// RequireSession.
func Backup(c *gin.Context) {
	if Cfg.DBBackend != "sqlite" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Backup is only available on the sqlite backend"})
		return
	}
	c.FileAttachment(Cfg.DBPath, "backup.db")
}
