package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/internal/domain/user"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
)

// SetupUserRoutes configura as rotas para gerenciamento de operadores
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	userRouter.Use(auth.JWTAuthMiddleware())
	{
		// Alteração da própria senha (qualquer operador autenticado)
		userRouter.POST("/change-password", userController.ChangePassword)

		// Gerenciamento de operadores (somente administradores)
		adminOnly := auth.RoleAuthMiddleware(string(user.RoleAdmin))
		userRouter.POST("", adminOnly, userController.Create)
		userRouter.GET("", adminOnly, userController.List)
		userRouter.GET("/:id", adminOnly, userController.Get)
		userRouter.PUT("/:id", adminOnly, userController.Update)
		userRouter.DELETE("/:id", adminOnly, userController.Delete)
	}
}
