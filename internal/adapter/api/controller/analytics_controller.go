package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/dto"
	"github.com/hugohenrick/medbot-analytics/internal/service/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// AnalyticsController gerencia as requisições das métricas agregadas do dashboard
type AnalyticsController struct {
	service             *analytics.Service
	logger              logger.Logger
	queryHandlerEnabled bool
}

// NewAnalyticsController cria uma nova instância de AnalyticsController
func NewAnalyticsController(service *analytics.Service, logger logger.Logger, queryHandlerEnabled bool) *AnalyticsController {
	return &AnalyticsController{
		service:             service,
		logger:              logger,
		queryHandlerEnabled: queryHandlerEnabled,
	}
}

// respond envia o resultado da agregação ou o erro padronizado
func (c *AnalyticsController) respond(ctx *gin.Context, data interface{}, err error) {
	if err != nil {
		c.logger.Error("Erro ao calcular métrica", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular métrica", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, data)
}

// WeeklyUsers retorna os usuários ativos na última semana
// @Summary Usuários ativos na semana
// @Description Retorna os usuários do chatbot com login nos últimos 7 dias
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.WeeklyActiveUsersResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /weekly-users [get]
func (c *AnalyticsController) WeeklyUsers(ctx *gin.Context) {
	result, err := c.service.WeeklyActiveUsers(ctx)
	c.respond(ctx, result, err)
}

// UserQueries retorna as estatísticas de consultas por usuário
// @Summary Consultas por usuário
// @Description Retorna o total de mensagens por usuário do chatbot
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.UserQueryStatisticsResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /user-queries [get]
func (c *AnalyticsController) UserQueries(ctx *gin.Context) {
	result, err := c.service.UserQueryStatistics(ctx)
	c.respond(ctx, result, err)
}

// UserActivity retorna o detalhamento das sessões de chat de um usuário
// @Summary Atividade de um usuário
// @Description Retorna as sessões de chat de um usuário, da mais recente para a mais antiga
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param user path string true "ID do usuário"
// @Success 200 {object} analytics.UserActivityResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /user-queries/{user} [get]
func (c *AnalyticsController) UserActivity(ctx *gin.Context) {
	result, err := c.service.UserActivity(ctx, ctx.Param("user"))
	c.respond(ctx, result, err)
}

// MedicineSearch retorna as estatísticas de medicamentos pesquisados
// @Summary Medicamentos pesquisados
// @Description Retorna as menções de medicamentos conhecidos nas conversas
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param medicine path string false "Nome do medicamento"
// @Success 200 {object} analytics.MedicineSearchResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicine-search [get]
func (c *AnalyticsController) MedicineSearch(ctx *gin.Context) {
	if medicine := ctx.Param("medicine"); medicine != "" {
		result, err := c.service.MedicineSearchByName(ctx, medicine)
		c.respond(ctx, result, err)
		return
	}

	result, err := c.service.MedicineSearchStats(ctx)
	c.respond(ctx, result, err)
}

// DailyEngagement retorna o engajamento diário dos últimos 30 dias
// @Summary Engajamento diário
// @Description Retorna o volume diário de conversas nos últimos 30 dias
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.DailyEngagementResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /daily-engagement [get]
func (c *AnalyticsController) DailyEngagement(ctx *gin.Context) {
	result, err := c.service.DailyEngagement(ctx)
	c.respond(ctx, result, err)
}

// Demographics retorna a distribuição demográfica dos usuários
// @Summary Demografia dos usuários
// @Description Retorna a distribuição por faixa etária, verificação, provedor OAuth e completude de perfil
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.DemographicsResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /demographics [get]
func (c *AnalyticsController) Demographics(ctx *gin.Context) {
	result, err := c.service.UserDemographics(ctx)
	c.respond(ctx, result, err)
}

// ChatSessions retorna a análise das sessões de chat
// @Summary Sessões de chat
// @Description Retorna o resumo de tamanho e engajamento das sessões de chat
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.ChatSessionsResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat-sessions [get]
func (c *AnalyticsController) ChatSessions(ctx *gin.Context) {
	result, err := c.service.ChatSessionAnalysis(ctx)
	c.respond(ctx, result, err)
}

// PeakHours retorna os horários de pico de uso
// @Summary Horários de pico
// @Description Retorna a distribuição de conversas pelas 24 horas do dia
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.PeakHoursResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /peak-hours [get]
func (c *AnalyticsController) PeakHours(ctx *gin.Context) {
	result, err := c.service.PeakUsageHours(ctx)
	c.respond(ctx, result, err)
}

// Retention retorna a análise de retenção de usuários
// @Summary Retenção de usuários
// @Description Classifica os usuários do chatbot em novos, recorrentes e inativos
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.RetentionResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /retention [get]
func (c *AnalyticsController) Retention(ctx *gin.Context) {
	result, err := c.service.RetentionAnalysis(ctx)
	c.respond(ctx, result, err)
}

// ResponseTimes retorna a análise de tempos de resposta
// @Summary Tempos de resposta
// @Description Retorna a estimativa de tempos de resposta do bot
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.ResponseTimesResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /response-times [get]
func (c *AnalyticsController) ResponseTimes(ctx *gin.Context) {
	result, err := c.service.ResponseTimeAnalysis(ctx)
	c.respond(ctx, result, err)
}

// ContentCategories retorna a análise de categorias de conteúdo
// @Summary Categorias de conteúdo
// @Description Classifica as mensagens dos usuários em categorias médicas
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.ContentCategoriesResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /content-categories [get]
func (c *AnalyticsController) ContentCategories(ctx *gin.Context) {
	result, err := c.service.ContentCategoryAnalysis(ctx)
	c.respond(ctx, result, err)
}

// AgeCategoryQueries retorna as consultas por faixa etária
// @Summary Consultas por faixa etária
// @Description Retorna o volume de conversas por faixa etária dos usuários
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.AgeCategoryQueriesResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /age-category-queries [get]
func (c *AnalyticsController) AgeCategoryQueries(ctx *gin.Context) {
	result, err := c.service.AgeCategoryQueries(ctx)
	c.respond(ctx, result, err)
}

// RefreshAll recalcula todas as métricas e retorna o documento combinado
// @Summary Atualiza todas as métricas
// @Description Recalcula todas as métricas do dashboard em paralelo
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /refresh-all [get]
func (c *AnalyticsController) RefreshAll(ctx *gin.Context) {
	data, err := c.service.RefreshAll(ctx)
	if err != nil {
		c.logger.Error("Erro ao atualizar todas as métricas", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RefreshStatus retorna o estado atual dos componentes do dashboard
// @Summary Estado do dashboard
// @Description Retorna o estado dos componentes e o tempo de atividade do servidor
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} analytics.StatusResult
// @Router /refresh-status [get]
func (c *AnalyticsController) RefreshStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.Status(c.queryHandlerEnabled))
}
