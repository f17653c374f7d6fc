package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	testUserID    = uuid.MustParse("90a12345-f12a-98c4-a456-513432930000")
	foreignUserID = uuid.MustParse("11111111-2222-3333-4444-555555555555")
	ownedTaskID   = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	foreignTaskID = uuid.MustParse("123e4567-e89b-12d3-a456-426614174001")
)

// newTestRouter builds a router whose group pretends the request was
// authenticated as testUserID.
func newTestRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api/v1")
	apiGroup.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Set("email", "test@example.com")
		c.Next()
	})
	return router, apiGroup
}
