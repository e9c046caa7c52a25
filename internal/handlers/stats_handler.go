package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/stats
// The three counts are independent and issued concurrently.
func GetStats(c *gin.Context) {
	var (
		leads, projects, tasks          int64
		errLeads, errProjects, errTasks error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); leads, errLeads = DB.CountLeads() }()
	go func() { defer wg.Done(); projects, errProjects = DB.CountActiveProjects() }()
	go func() { defer wg.Done(); tasks, errTasks = DB.CountLooseTasks() }()
	wg.Wait()

	for _, err := range []error{errLeads, errProjects, errTasks} {
		if err != nil {
			serverError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"leads":    leads,
		"projects": projects,
		"tasks":    tasks,
	})
}
