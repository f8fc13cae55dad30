package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
)

// SetupSetupRoutes configura as rotas para configuração inicial do sistema
func SetupSetupRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	setupRouter := router.Group("/setup")
	{
		// Rota para criar o primeiro operador administrador
		// Esta rota não requer autenticação e só funciona enquanto não há operadores
		setupRouter.POST("/admin", userController.CreateAdminUser)
	}
}
