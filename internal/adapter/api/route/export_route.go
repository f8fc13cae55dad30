package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
)

// SetupExportRoutes configura as rotas de exportação de dados
func SetupExportRoutes(router *gin.RouterGroup, exportController *controller.ExportController) {
	exportRouter := router.Group("/export")
	exportRouter.Use(auth.JWTAuthMiddleware())
	{
		exportRouter.GET("/:id", exportController.Export)
	}
}
