package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/controller"
	"github.com/hugohenrick/medbot-analytics/pkg/auth"
)

// SetupAnalyticsRoutes configura as rotas das métricas agregadas do dashboard
func SetupAnalyticsRoutes(router *gin.RouterGroup, analyticsController *controller.AnalyticsController) {
	analyticsRouter := router.Group("")
	analyticsRouter.Use(auth.JWTAuthMiddleware())
	{
		// Um endpoint de leitura por métrica do dashboard
		analyticsRouter.GET("/weekly-users", analyticsController.WeeklyUsers)
		analyticsRouter.GET("/user-queries", analyticsController.UserQueries)
		analyticsRouter.GET("/user-queries/:user", analyticsController.UserActivity)
		analyticsRouter.GET("/medicine-search", analyticsController.MedicineSearch)
		analyticsRouter.GET("/medicine-search/:medicine", analyticsController.MedicineSearch)
		analyticsRouter.GET("/daily-engagement", analyticsController.DailyEngagement)
		analyticsRouter.GET("/demographics", analyticsController.Demographics)
		analyticsRouter.GET("/chat-sessions", analyticsController.ChatSessions)
		analyticsRouter.GET("/peak-hours", analyticsController.PeakHours)
		analyticsRouter.GET("/retention", analyticsController.Retention)
		analyticsRouter.GET("/response-times", analyticsController.ResponseTimes)
		analyticsRouter.GET("/content-categories", analyticsController.ContentCategories)
		analyticsRouter.GET("/age-category-queries", analyticsController.AgeCategoryQueries)

		// Atualização combinada e estado do servidor
		analyticsRouter.GET("/refresh-all", analyticsController.RefreshAll)
		analyticsRouter.GET("/refresh-status", analyticsController.RefreshStatus)
	}
}
