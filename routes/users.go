package routes

import (
	"errors"
	"net/http"

	"organizely/organizer/database"
	"organizely/organizer/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
	group.PUT("/users/:id", func(c *gin.Context) { UpdateUser(c, db, userService) })
	group.DELETE("/users/:id", func(c *gin.Context) { DeleteUser(c, db, userService) })
}

// requireSelf rejects requests where the path id names a different account
// than the authenticated one.
func requireSelf(c *gin.Context, id string) bool {
	userID, ok := userIDFromContext(c)
	if !ok {
		return false
	}
	if userID.String() != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to access this user"})
		return false
	}
	return true
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id := c.Param("id")
	if !requireSelf(c, id) {
		return
	}

	user, err := userService.GetUserById(db, id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id := c.Param("id")
	if !requireSelf(c, id) {
		return
	}

	var userData map[string]interface{}
	if err := c.ShouldBindJSON(&userData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.UpdateUser(db, id, userData)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	id := c.Param("id")
	if !requireSelf(c, id) {
		return
	}

	if err := userService.DeleteUser(db, id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
