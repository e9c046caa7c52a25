package handlers

import (
	"net/http"
	"testing"

	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func projectRouter() *gin.Engine {
	r := gin.New()
	r.GET("/api/projects", GetProjects)
	r.POST("/api/projects", CreateProject)
	r.PATCH("/api/projects/:id", UpdateProject)
	r.DELETE("/api/projects/:id", DeleteProject)
	r.GET("/api/projects/:id/tasks", GetProjectTasks)
	return r
}

func TestCreateProject_StatusSynonym(t *testing.T) {
	setupEnv(t, config.Config{}, nil, nil)
	r := projectRouter()

	w := doJSON(t, r, http.MethodPost, "/api/projects", map[string]any{
		"name":   "Ouverture",
		"status": "🔄 En cours",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var project models.Project
	decode(t, w, &project)
	require.Equal(t, models.ProjectInProgress, project.Status)
	require.Equal(t, 0, project.Progress)
}

func TestUpdateProject_ProgressNotWritable(t *testing.T) {
	st, _ := setupEnv(t, config.Config{}, nil, nil)
	r := projectRouter()

	project, err := st.CreateProject(map[string]any{"name": "Ouverture"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/projects/"+project.ID, map[string]any{
		"progress":    80,
		"description": "Phase 2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	fresh, err := st.GetProject(project.ID)
	require.NoError(t, err)
	require.Equal(t, 0, fresh.Progress)
	require.Equal(t, "Phase 2", fresh.Description)
}

func TestGetProjectTasks_ForestShape(t *testing.T) {
	st, db := setupEnv(t, config.Config{}, nil, nil)
	r := projectRouter()

	project, err := st.CreateProject(map[string]any{"name": "Ouverture"})
	require.NoError(t, err)

	root, err := st.CreateTask(map[string]any{"name": "Visite", "projectId": project.ID})
	require.NoError(t, err)
	child, err := st.CreateTask(map[string]any{"name": "Compte-rendu", "parentId": root.ID, "projectId": project.ID})
	require.NoError(t, err)
	loose, err := st.CreateTask(map[string]any{"name": "Relance", "projectId": project.ID})
	require.NoError(t, err)

	// A task whose parent lives outside the project falls back to root.
	missing := "outside"
	orphan := models.Task{ID: "orphan-1", Name: "Orpheline", Status: models.TaskTodo, ParentID: &missing, ProjectID: &project.ID}
	require.NoError(t, db.Create(&orphan).Error)

	w := doJSON(t, r, http.MethodGet, "/api/projects/"+project.ID+"/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var forest []struct {
		ID       string `json:"id"`
		SubTasks []struct {
			ID       string `json:"id"`
			SubTasks []any  `json:"subTasks"`
		} `json:"subTasks"`
	}
	decode(t, w, &forest)
	require.Len(t, forest, 3)

	byID := make(map[string]int)
	for i, node := range forest {
		byID[node.ID] = i
	}
	require.Contains(t, byID, root.ID)
	require.Contains(t, byID, loose.ID)
	require.Contains(t, byID, orphan.ID)

	visite := forest[byID[root.ID]]
	require.Len(t, visite.SubTasks, 1)
	require.Equal(t, child.ID, visite.SubTasks[0].ID)
	require.Empty(t, visite.SubTasks[0].SubTasks)
	require.Empty(t, forest[byID[loose.ID]].SubTasks)
}

func TestGetProjectTasks_NotFound(t *testing.T) {
	setupEnv(t, config.Config{}, nil, nil)
	r := projectRouter()

	w := doJSON(t, r, http.MethodGet, "/api/projects/missing/tasks", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject_ClearsTaskReferences(t *testing.T) {
	st, _ := setupEnv(t, config.Config{}, nil, nil)
	r := projectRouter()

	project, err := st.CreateProject(map[string]any{"name": "Ouverture"})
	require.NoError(t, err)
	task, err := st.CreateTask(map[string]any{"name": "Visite", "projectId": project.ID})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodDelete, "/api/projects/"+project.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	fresh, err := st.GetTask(task.ID)
	require.NoError(t, err)
	require.Nil(t, fresh.ProjectID)
}
