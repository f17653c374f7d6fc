package routes

import (
	"errors"
	"net/http"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"
	"organizely/organizer/views"

	"github.com/gin-gonic/gin"
)

func RegisterProjectRoutes(group *gin.RouterGroup, db *database.Database, projectService services.ProjectServiceInterface, taskService services.TaskServiceInterface) {
	group.GET("/projects", func(c *gin.Context) { GetProjects(c, db, projectService) })
	group.POST("/projects", func(c *gin.Context) { CreateProject(c, db, projectService) })
	group.GET("/projects/:id", func(c *gin.Context) { GetProjectById(c, db, projectService) })
	group.PUT("/projects/:id", func(c *gin.Context) { UpdateProject(c, db, projectService) })
	group.DELETE("/projects/:id", func(c *gin.Context) { DeleteProject(c, db, projectService) })
	group.GET("/projects/:id/stats", func(c *gin.Context) { GetProjectStats(c, db, projectService) })
	group.GET("/projects/:id/tasks", func(c *gin.Context) { GetProjectTasks(c, db, projectService, taskService) })
}

// sortParams reads the sort and order query parameters. Priority sorts
// default to descending so the most urgent entries lead; the other keys
// default to ascending.
func sortParams(c *gin.Context) (views.SortKey, bool) {
	key := views.ParseSortKey(c.Query("sort"))
	defaultOrder := "asc"
	if key == views.SortByPriority {
		defaultOrder = "desc"
	}
	return key, c.DefaultQuery("order", defaultOrder) == "asc"
}

func GetProjects(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	params := make(map[string]interface{})

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	params["user_id"] = userID.String()

	if title := c.Query("title"); title != "" {
		params["title"] = title
	}
	if completed := c.Query("completed"); completed != "" {
		params["completed"] = completed
	}

	projects, err := projectService.GetProjects(db, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	key, ascending := sortParams(c)
	c.JSON(http.StatusOK, views.SortProjects(projects, key, ascending, time.Now()))
}

func CreateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	var projectData map[string]interface{}
	if err := c.ShouldBindJSON(&projectData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	projectData["user_id"] = userID.String()

	createdProject, err := projectService.CreateProject(db, projectData)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdProject)
}

func GetProjectById(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id := c.Param("id")
	project, err := projectService.GetProjectById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	if project.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

func UpdateProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id := c.Param("id")
	var projectData map[string]interface{}
	if err := c.ShouldBindJSON(&projectData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, ok := ownedProject(c, db, projectService, id)
	if !ok {
		return
	}

	updatedProject, err := projectService.UpdateProject(db, project.ID.String(), projectData)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updatedProject)
}

func DeleteProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id := c.Param("id")

	project, ok := ownedProject(c, db, projectService, id)
	if !ok {
		return
	}

	if err := projectService.DeleteProject(db, project.ID.String()); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func GetProjectStats(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface) {
	id := c.Param("id")

	project, ok := ownedProject(c, db, projectService, id)
	if !ok {
		return
	}

	stats, err := projectService.GetProjectStats(db, project.ID.String(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": project.ID,
		"overdue":    stats.Overdue,
		"open":       stats.Open,
		"completed":  stats.Completed,
		"total":      stats.Total(),
	})
}

// GetProjectTasks returns the project's tasks bucketed into overdue, open
// and completed sections, each sorted by the requested key.
func GetProjectTasks(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface, taskService services.TaskServiceInterface) {
	id := c.Param("id")

	project, ok := ownedProject(c, db, projectService, id)
	if !ok {
		return
	}

	tasks, err := taskService.GetTasks(db, map[string]interface{}{
		"project_id": project.ID.String(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	key, ascending := sortParams(c)

	completed := views.FilterByCompletion(tasks, true)
	incomplete := views.FilterByCompletion(tasks, false)
	overdue := views.FilterOverdue(incomplete, now)

	var open []models.Task
	for _, task := range incomplete {
		if task.DueDate == nil || !task.DueDate.Before(now) {
			open = append(open, task)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": project.ID,
		"overdue":    views.SortTasks(overdue, key, ascending, now),
		"open":       views.SortTasks(open, key, ascending, now),
		"completed":  views.SortTasks(completed, key, ascending, now),
	})
}

// ownedProject loads the project and enforces that the requester owns it,
// writing the error response itself when it does not exist or is foreign.
func ownedProject(c *gin.Context, db *database.Database, projectService services.ProjectServiceInterface, id string) (models.Project, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return models.Project{}, false
	}

	project, err := projectService.GetProjectById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return models.Project{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return models.Project{}, false
	}
	if project.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this project"})
		return models.Project{}, false
	}
	return project, true
}
