package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Food-order-lu/CRM-Task-manager/internal/realtime"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetTasks handles GET /api/tasks
// Returns all tasks joined with the owning commerce's name, ordered by due
// date ascending (no date last) then creation time descending.
func GetTasks(c *gin.Context) {
	tasks, err := DB.ListTasks()
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func badReference(err error) bool {
	return errors.Is(err, store.ErrParentNotFound) ||
		errors.Is(err, store.ErrParentCycle) ||
		errors.Is(err, store.ErrProjectNotFound) ||
		errors.Is(err, store.ErrCommerceNotFound)
}

// CreateTask handles POST /api/tasks
// After the write: the owning project's progress is re-derived, then the
// calendar reconciliation runs as a best-effort side effect.
func CreateTask(c *gin.Context) {
	fields, ok := bindBody(c)
	if !ok {
		return
	}
	if name, _ := fields["name"].(string); name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	task, err := DB.CreateTask(fields)
	if err != nil {
		if badReference(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, err)
		}
		return
	}

	recomputeProgress(task.ProjectID)
	if Cal != nil {
		Cal.Reconcile(c.Request.Context(), task)
	}
	// Reload: reconciliation may have attached a remote event id.
	if fresh, err := DB.GetTask(task.ID); err == nil {
		task = fresh
	}

	realtime.GetHub().Notify("task_created", task.ID)
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /api/tasks/:id
func UpdateTask(c *gin.Context) {
	id := c.Param("id")

	existing, err := DB.GetTask(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	fields, ok := bindBody(c)
	if !ok {
		return
	}

	task, err := DB.UpdateTask(id, fields)
	if err != nil {
		if badReference(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, err)
		}
		return
	}

	recomputeProgress(existing.ProjectID)
	if task.ProjectID != nil && (existing.ProjectID == nil || *existing.ProjectID != *task.ProjectID) {
		recomputeProgress(task.ProjectID)
	}
	if Cal != nil {
		Cal.Reconcile(c.Request.Context(), task)
	}
	if fresh, err := DB.GetTask(task.ID); err == nil {
		task = fresh
	}

	realtime.GetHub().Notify("task_updated", id)
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Deletion cascades through the subtree; each removed task's remote calendar
// events are cleaned up first.
func DeleteTask(c *gin.Context) {
	id := c.Param("id")

	if _, err := DB.GetTask(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	tree, err := DB.ListTaskTree(id)
	if err != nil {
		serverError(c, err)
		return
	}

	projects := make(map[string]bool)
	for i := range tree {
		if Cal != nil {
			Cal.CleanupTask(c.Request.Context(), &tree[i])
		}
		if tree[i].ProjectID != nil {
			projects[*tree[i].ProjectID] = true
		}
	}

	if err := DB.DeleteTask(id); err != nil {
		serverError(c, err)
		return
	}

	for projectID := range projects {
		recomputeProgress(&projectID)
	}

	realtime.GetHub().Notify("task_deleted", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func recomputeProgress(projectID *string) {
	if projectID == nil {
		return
	}
	if _, err := DB.RecomputeProjectProgress(*projectID); err != nil {
		log.Printf("[Tasks] recompute progress for %s: %v", *projectID, err)
	}
}
