package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
)

// SetupWidgetRoutes configura as rotas de atualização automática dos widgets
func SetupWidgetRoutes(router *gin.RouterGroup, widgetController *controller.WidgetController) {
	widgetRouter := router.Group("/widgets")
	widgetRouter.Use(auth.JWTAuthMiddleware())
	{
		widgetRouter.GET("", widgetController.List)
		widgetRouter.POST("/refresh", widgetController.SetRefresh)
		widgetRouter.GET("/notifications", widgetController.Notifications)
		widgetRouter.DELETE("/settings", widgetController.ClearAll)
		widgetRouter.GET("/:id", widgetController.Get)
		widgetRouter.POST("/:id/refresh", widgetController.Refresh)
	}
}
