package handlers

import (
	"net/http"

	"github.com/Food-order-lu/CRM-Task-manager/internal/auth"
	"github.com/Food-order-lu/CRM-Task-manager/internal/calendar"
	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/notion"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// Package-level collaborators, wired once at startup (and by tests).
var (
	Cfg          config.Config
	DB           *store.Store
	Cal          *calendar.Syncer
	GoogleAuth   *calendar.Google
	NotionMirror *notion.Mirror
	Creds        auth.CredentialStore
)

// Init wires the handler package. Any collaborator may be nil when the
// matching feature is not configured; handlers degrade per endpoint.
func Init(cfg config.Config, db *store.Store, cal *calendar.Syncer, google *calendar.Google, mirror *notion.Mirror, creds auth.CredentialStore) {
	Cfg = cfg
	DB = db
	Cal = cal
	GoogleAuth = google
	NotionMirror = mirror
	Creds = creds
}

// bindBody decodes a free-form JSON object body. Entity writes accept
// arbitrary field sets (camelCase or snake_case); the store normalizes them.
func bindBody(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return fields, true
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
