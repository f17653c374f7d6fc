package routes

import (
	"errors"
	"net/http"

	"organizely/organizer/database"
	"organizely/organizer/models"
	"organizely/organizer/services"

	"github.com/gin-gonic/gin"
)

func RegisterSubtaskRoutes(group *gin.RouterGroup, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	group.GET("/subtasks", func(c *gin.Context) { ListSubtasks(c, db, subtaskService) })
	group.POST("/subtasks", func(c *gin.Context) { CreateSubtask(c, db, subtaskService) })
	group.GET("/subtasks/:id", func(c *gin.Context) { GetSubtaskById(c, db, subtaskService) })
	group.PUT("/subtasks/:id", func(c *gin.Context) { UpdateSubtask(c, db, subtaskService) })
	group.DELETE("/subtasks/:id", func(c *gin.Context) { DeleteSubtask(c, db, subtaskService) })
}

func ListSubtasks(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	taskID := c.Query("task_id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_id query parameter is required"})
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	subtasks, err := subtaskService.ListSubtasksByTask(db, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var owned []models.Subtask
	for _, subtask := range subtasks {
		if subtask.UserID == userID {
			owned = append(owned, subtask)
		}
	}
	c.JSON(http.StatusOK, owned)
}

func CreateSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	var subtaskData map[string]interface{}
	if err := c.ShouldBindJSON(&subtaskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := userIDFromContext(c); !ok {
		return
	}

	createdSubtask, err := subtaskService.CreateSubtask(db, subtaskData)
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
	c.JSON(http.StatusCreated, createdSubtask)
}

func GetSubtaskById(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	subtask, ok := ownedSubtask(c, db, subtaskService, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, subtask)
}

func UpdateSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	var subtaskData map[string]interface{}
	if err := c.ShouldBindJSON(&subtaskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtask, ok := ownedSubtask(c, db, subtaskService, c.Param("id"))
	if !ok {
		return
	}

	updatedSubtask, err := subtaskService.UpdateSubtask(db, subtask.ID.String(), subtaskData)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updatedSubtask)
}

func DeleteSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	subtask, ok := ownedSubtask(c, db, subtaskService, c.Param("id"))
	if !ok {
		return
	}

	if err := subtaskService.DeleteSubtask(db, subtask.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}

func ownedSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface, id string) (models.Subtask, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return models.Subtask{}, false
	}

	subtask, err := subtaskService.GetSubtaskById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrSubtaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
			return models.Subtask{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return models.Subtask{}, false
	}
	if subtask.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this subtask"})
		return models.Subtask{}, false
	}
	return subtask, true
}
