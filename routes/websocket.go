package routes

import (
	"organizely/organizer/services"

	"github.com/gin-gonic/gin"
)

func RegisterWebSocketRoutes(group *gin.RouterGroup, wsService *services.WebSocketService) {
	group.GET("/ws", wsService.HandleConnection)
}
