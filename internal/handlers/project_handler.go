package handlers

import (
	"errors"
	"net/http"

	"github.com/Food-order-lu/CRM-Task-manager/internal/models"
	"github.com/Food-order-lu/CRM-Task-manager/internal/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProjects handles GET /api/projects
func GetProjects(c *gin.Context) {
	projects, err := DB.ListProjects()
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject handles POST /api/projects
func CreateProject(c *gin.Context) {
	fields, ok := bindBody(c)
	if !ok {
		return
	}
	if name, _ := fields["name"].(string); name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	project, err := DB.CreateProject(fields)
	if err != nil {
		serverError(c, err)
		return
	}

	realtime.GetHub().Notify("project_created", project.ID)
	c.JSON(http.StatusOK, project)
}

// UpdateProject handles PATCH /api/projects/:id
func UpdateProject(c *gin.Context) {
	id := c.Param("id")
	if _, err := DB.GetProject(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	fields, ok := bindBody(c)
	if !ok {
		return
	}

	project, err := DB.UpdateProject(id, fields)
	if err != nil {
		serverError(c, err)
		return
	}

	realtime.GetHub().Notify("project_updated", id)
	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
// Tasks owned by the project survive with their foreign key cleared.
func DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if _, err := DB.GetProject(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	if err := DB.DeleteProject(id); err != nil {
		serverError(c, err)
		return
	}

	realtime.GetHub().Notify("project_deleted", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// taskNode is a task with its children attached, as served by the project
// task-tree endpoint.
type taskNode struct {
	models.Task
	SubTasks []*taskNode `json:"subTasks"`
}

// buildTaskForest assembles a forest from a flat task list: one pass indexes
// every task, a second attaches each task to its parent when the parent is in
// the set, to the root list otherwise. An orphaned parent reference falls
// back to root.
func buildTaskForest(tasks []models.Task) []*taskNode {
	index := make(map[string]*taskNode, len(tasks))
	nodes := make([]*taskNode, 0, len(tasks))
	for _, task := range tasks {
		node := &taskNode{Task: task, SubTasks: make([]*taskNode, 0)}
		index[task.ID] = node
		nodes = append(nodes, node)
	}

	roots := make([]*taskNode, 0)
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.SubTasks = append(parent.SubTasks, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// GetProjectTasks handles GET /api/projects/:id/tasks
func GetProjectTasks(c *gin.Context) {
	id := c.Param("id")
	if _, err := DB.GetProject(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			serverError(c, err)
		}
		return
	}

	tasks, err := DB.ListTasksByProject(id)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildTaskForest(tasks))
}
