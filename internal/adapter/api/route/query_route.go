package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/internal/domain/user"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
)

// SetupQueryRoutes configura as rotas de consulta em linguagem natural
func SetupQueryRoutes(router *gin.RouterGroup, queryController *controller.QueryController) {
	queryRouter := router.Group("")
	queryRouter.Use(auth.JWTAuthMiddleware())
	{
		queryRouter.POST("/natural-query", queryController.NaturalQuery)
		queryRouter.GET("/sample-queries", queryController.SampleQueries)
		queryRouter.GET("/db-structure", queryController.DBStructure)

		// Auditoria de consultas (somente administradores)
		queryRouter.GET("/query-audit", auth.RoleAuthMiddleware(string(user.RoleAdmin)), queryController.AuditLog)
	}
}
