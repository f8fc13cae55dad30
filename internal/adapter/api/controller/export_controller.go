package controller

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/dto"
	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/hugohenrick/medbot-analytics/internal/service/analytics"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// ExportController exporta os dados tabulares dos widgets em CSV ou JSON
type ExportController struct {
	service *analytics.Service
	logger  logger.Logger
}

// NewExportController cria uma nova instância de ExportController
func NewExportController(service *analytics.Service, logger logger.Logger) *ExportController {
	return &ExportController{
		service: service,
		logger:  logger,
	}
}

// Export exporta o conjunto de dados de um widget
// @Summary Exporta os dados de um widget
// @Description Retorna o conjunto de dados tabular de um widget em CSV ou JSON
// @Tags export
// @Produce json
// @Produce text/csv
// @Security Bearer
// @Param id path string true "ID do widget"
// @Param format query string false "Formato de exportação (csv ou json)" default(csv)
// @Success 200
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /export/{id} [get]
func (c *ExportController) Export(ctx *gin.Context) {
	widgetID := ctx.Param("id")
	if !widget.IsKnown(widgetID) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Widget desconhecido", widgetID))
		return
	}

	header, rows, err := c.dataset(ctx, widgetID)
	if err != nil {
		c.logger.Error("Erro ao exportar widget", "widget", widgetID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao exportar dados", err.Error()))
		return
	}

	format := ctx.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.writeCSV(ctx, widgetID, header, rows)
	case "json":
		c.writeJSON(ctx, widgetID, header, rows)
	default:
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Formato inválido", "Use 'csv' ou 'json'"))
	}
}

func (c *ExportController) writeCSV(ctx *gin.Context, widgetID string, header []string, rows [][]string) {
	filename := fmt.Sprintf("%s-%s.csv", widgetID, time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(ctx.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func (c *ExportController) writeJSON(ctx *gin.Context, widgetID string, header []string, rows [][]string) {
	data := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		item := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				item[col] = row[i]
			}
		}
		data = append(data, item)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"widget":      widgetID,
		"exported_at": time.Now().UTC().Format(time.RFC3339),
		"data":        data,
	})
}

// dataset calcula o conjunto de dados tabular do widget
func (c *ExportController) dataset(ctx *gin.Context, widgetID string) ([]string, [][]string, error) {
	switch widgetID {
	case widget.WeeklyUsers:
		result, err := c.service.WeeklyActiveUsers(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.Users))
		for _, u := range result.Users {
			rows = append(rows, []string{u.UserID, u.DisplayName, u.LastLogin})
		}
		return []string{"user_id", "display_name", "last_login"}, rows, nil

	case widget.UserQueries:
		result, err := c.service.UserQueryStatistics(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.UserStatistics))
		for _, s := range result.UserStatistics {
			rows = append(rows, []string{s.UserID, s.DisplayName, fmt.Sprint(s.QueryCount), s.LastLogin})
		}
		return []string{"user_id", "display_name", "query_count", "last_login"}, rows, nil

	case widget.MedicineSearch:
		result, err := c.service.MedicineSearchStats(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.MedicineStatistics))
		for _, s := range result.MedicineStatistics {
			rows = append(rows, []string{s.Medicine, fmt.Sprint(s.SearchCount)})
		}
		return []string{"medicine", "search_count"}, rows, nil

	case widget.DailyEngagement:
		result, err := c.service.DailyEngagement(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.DailyEngagement))
		for _, d := range result.DailyEngagement {
			rows = append(rows, []string{d.Date, fmt.Sprint(d.Queries)})
		}
		return []string{"date", "queries"}, rows, nil

	case widget.Demographics:
		result, err := c.service.UserDemographics(ctx)
		if err != nil {
			return nil, nil, err
		}
		var rows [][]string
		for group, count := range result.AgeDistribution {
			rows = append(rows, []string{"age_distribution", group, fmt.Sprint(count)})
		}
		for key, count := range result.VerificationStats {
			rows = append(rows, []string{"verification", key, fmt.Sprint(count)})
		}
		for provider, count := range result.OAuthProviders {
			rows = append(rows, []string{"oauth_provider", provider, fmt.Sprint(count)})
		}
		for key, count := range result.ProfileCompletion {
			rows = append(rows, []string{"profile_completion", key, fmt.Sprint(count)})
		}
		return []string{"metric", "category", "count"}, rows, nil

	case widget.ChatSessions:
		result, err := c.service.ChatSessionAnalysis(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := [][]string{
			{"total_sessions", fmt.Sprint(result.TotalSessions)},
			{"active_sessions", fmt.Sprint(result.ActiveSessions)},
			{"average_session_length", fmt.Sprint(result.AverageSessionLength)},
			{"max_session_length", fmt.Sprint(result.MaxSessionLength)},
			{"min_session_length", fmt.Sprint(result.MinSessionLength)},
			{"session_engagement_rate", fmt.Sprint(result.SessionEngagementRate)},
		}
		return []string{"metric", "value"}, rows, nil

	case widget.PeakHours:
		result, err := c.service.PeakUsageHours(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.HourlyUsage))
		for _, h := range result.HourlyUsage {
			rows = append(rows, []string{h.Hour, fmt.Sprint(h.UsageCount)})
		}
		return []string{"hour", "usage_count"}, rows, nil

	case widget.Retention:
		result, err := c.service.RetentionAnalysis(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := [][]string{
			{"new_users_last_7_days", fmt.Sprint(result.NewUsersLast7Days)},
			{"new_users_last_30_days", fmt.Sprint(result.NewUsersLast30Days)},
			{"returning_users_last_7_days", fmt.Sprint(result.ReturningUsersLast7Days)},
			{"returning_users_last_30_days", fmt.Sprint(result.ReturningUsersLast30Days)},
			{"inactive_users", fmt.Sprint(result.InactiveUsers)},
		}
		return []string{"metric", "value"}, rows, nil

	case widget.ResponseTimes:
		result, err := c.service.ResponseTimeAnalysis(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := [][]string{
			{"total_responses", fmt.Sprint(result.TotalResponses)},
			{"average_response_time", fmt.Sprint(result.AverageResponseTime)},
			{"max_response_time", fmt.Sprint(result.MaxResponseTime)},
			{"min_response_time", fmt.Sprint(result.MinResponseTime)},
			{"fast_responses", fmt.Sprint(result.FastResponses)},
			{"slow_responses", fmt.Sprint(result.SlowResponses)},
		}
		return []string{"metric", "value"}, rows, nil

	case widget.ContentCategories:
		result, err := c.service.ContentCategoryAnalysis(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.CategoryBreakdown))
		for _, cat := range result.CategoryBreakdown {
			rows = append(rows, []string{cat.Category, fmt.Sprint(cat.Count), fmt.Sprint(cat.Percentage)})
		}
		return []string{"category", "count", "percentage"}, rows, nil

	case widget.AgeCategoryQueries:
		result, err := c.service.AgeCategoryQueries(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(result.AgeBreakdown))
		for _, g := range result.AgeBreakdown {
			rows = append(rows, []string{g.AgeGroup, fmt.Sprint(g.QueryCount), fmt.Sprint(g.Percentage)})
		}
		return []string{"age_group", "query_count", "percentage"}, rows, nil
	}

	return nil, nil, fmt.Errorf("widget desconhecido: %s", widgetID)
}
