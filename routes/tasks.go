package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"organizely/organizer/database"
	"organizely/organizer/services"
	"organizely/organizer/utils/geocode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface, scheduler *services.CompletionScheduler, geocoder geocode.Geocoder) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.POST("/tasks/:id/toggle", func(c *gin.Context) { ToggleTask(c, db, taskService, scheduler) })
	group.GET("/tasks/:id/location", func(c *gin.Context) { GetTaskLocation(c, db, taskService, geocoder) })
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userIDInterface.(uuid.UUID), true
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	taskData["user_id"] = userID.String()

	createdTask, err := taskService.CreateTask(db, taskData)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, createdTask)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")
	task, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	if task.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	existingTask, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existingTask.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this task"})
		return
	}

	updatedTask, err := taskService.UpdateTask(db, id, taskData)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updatedTask)
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id := c.Param("id")

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	existingTask, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existingTask.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this task"})
		return
	}

	if err := taskService.DeleteTask(db, id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

// ToggleTask flips the task's completion state. With ?deferred=true the
// write is armed on the completion scheduler instead of committed
// immediately, and a second deferred toggle cancels the pending one.
func ToggleTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, scheduler *services.CompletionScheduler) {
	id := c.Param("id")

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	existingTask, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existingTask.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this task"})
		return
	}

	if c.Query("deferred") == "true" && scheduler != nil {
		scheduled := scheduler.ScheduleToggle(existingTask.ID)
		c.JSON(http.StatusAccepted, gin.H{"scheduled": scheduled})
		return
	}

	task, err := taskService.ToggleCompletion(db, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func GetTaskLocation(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface, geocoder geocode.Geocoder) {
	id := c.Param("id")

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if task.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this task"})
		return
	}

	address := geocode.FallbackAddress
	if task.HasLocation() && geocoder != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		address = geocoder.ReverseGeocode(ctx, task.Latitude, task.Longitude)
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	params := make(map[string]interface{})

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	params["user_id"] = userID.String()

	if projectID := c.Query("project_id"); projectID != "" {
		params["project_id"] = projectID
	}

	if c.Query("unassigned") == "true" {
		params["unassigned"] = true
	}

	if completed := c.Query("completed"); completed != "" {
		params["completed"] = completed
	}

	if label := c.Query("label"); label != "" {
		params["label"] = label
	}

	tasks, err := taskService.GetTasks(db, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}
