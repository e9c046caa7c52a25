package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Food-order-lu/CRM-Task-manager/internal/models"
	"github.com/Food-order-lu/CRM-Task-manager/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCommerces handles GET /api/crm
func GetCommerces(c *gin.Context) {
	commerces, err := DB.ListCommerces()
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, commerces)
}

// CreateCommerce handles POST /api/crm
func CreateCommerce(c *gin.Context) {
	fields, ok := bindBody(c)
	if !ok {
		return
	}
	if name, _ := fields["name"].(string); name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	commerce, err := DB.CreateCommerce(fields)
	if err != nil {
		serverError(c, err)
		return
	}

	// A lead born active gets its project immediately, same rule as the
	// PATCH transition.
	if commerce.Status.IsActive() {
		if err := autoCreateProject(commerce); err != nil {
			serverError(c, err)
			return
		}
	}

	realtime.GetHub().Notify("commerce_created", commerce.ID)
	c.JSON(http.StatusOK, commerce)
}

// UpdateCommerce handles PATCH /api/crm/:id
// A transition into an active status (in-progress or won) auto-creates the
// lead's project unless one with the derived name already exists.
func UpdateCommerce(c *gin.Context) {
	id := c.Param("id")

	existing, err := DB.GetCommerce(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commerce not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	fields, ok := bindBody(c)
	if !ok {
		return
	}

	updated, err := DB.UpdateCommerce(id, fields)
	if err != nil {
		serverError(c, err)
		return
	}

	if _, patched := fields["status"]; patched && updated.Status != existing.Status && updated.Status.IsActive() {
		if err := autoCreateProject(updated); err != nil {
			serverError(c, err)
			return
		}
	}

	realtime.GetHub().Notify("commerce_updated", id)
	c.JSON(http.StatusOK, gin.H{"id": updated.ID, "status": updated.Status})
}

func autoCreateProject(lead *models.Commerce) error {
	name := fmt.Sprintf("Projet - %s", lead.Name)
	existing, err := DB.FindProjectByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	status := models.ProjectPlanned
	if lead.Status == models.CommerceWon {
		status = models.ProjectInProgress
	}
	_, err = DB.CreateProject(map[string]any{
		"name":        name,
		"status":      string(status),
		"description": fmt.Sprintf("Projet généré automatiquement depuis le lead CRM: %s", lead.Name),
	})
	if err == nil {
		log.Printf("[CRM] automated project created for %s", lead.Name)
	}
	return err
}

// DeleteCommerce handles DELETE /api/crm/:id
// Tasks referencing the lead survive with their foreign key cleared.
func DeleteCommerce(c *gin.Context) {
	id := c.Param("id")
	if _, err := DB.GetCommerce(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commerce not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	if err := DB.DeleteCommerce(id); err != nil {
		serverError(c, err)
		return
	}

	realtime.GetHub().Notify("commerce_deleted", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
