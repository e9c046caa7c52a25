package handlers

import (
	"net/http"
	"testing"

	"github.com/Food-order-lu/CRM-Task-manager/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	st, _ := setupEnv(t, config.Config{}, nil, nil)
	r := gin.New()
	r.GET("/api/stats", GetStats)

	_, err := st.CreateCommerce(map[string]any{"name": "Chez Paul"})
	require.NoError(t, err)
	_, err = st.CreateCommerce(map[string]any{"name": "Boulangerie"})
	require.NoError(t, err)

	active, err := st.CreateProject(map[string]any{"name": "Ouverture"})
	require.NoError(t, err)
	_, err = st.CreateProject(map[string]any{"name": "Clos", "status": "archived"})
	require.NoError(t, err)

	// Loose = no project, no commerce, not done.
	_, err = st.CreateTask(map[string]any{"name": "Relance"})
	require.NoError(t, err)
	_, err = st.CreateTask(map[string]any{"name": "Finie", "status": "done"})
	require.NoError(t, err)
	_, err = st.CreateTask(map[string]any{"name": "Rattachée", "projectId": active.ID})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Leads    int64 `json:"leads"`
		Projects int64 `json:"projects"`
		Tasks    int64 `json:"tasks"`
	}
	decode(t, w, &stats)
	require.Equal(t, int64(2), stats.Leads)
	require.Equal(t, int64(1), stats.Projects)
	require.Equal(t, int64(1), stats.Tasks)
}
