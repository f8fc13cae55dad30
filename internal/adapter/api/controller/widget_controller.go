package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/dto"
	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/hugohenrick/medbot-analytics/internal/scheduler"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// WidgetController gerencia a configuração de atualização automática dos widgets
type WidgetController struct {
	registry *scheduler.Registry
	logger   logger.Logger
}

// NewWidgetController cria uma nova instância de WidgetController
func NewWidgetController(registry *scheduler.Registry, logger logger.Logger) *WidgetController {
	return &WidgetController{
		registry: registry,
		logger:   logger,
	}
}

// SetRefresh configura o intervalo de atualização automática de um widget
// @Summary Configura a atualização de um widget
// @Description Define o intervalo de atualização automática (0, 30, 60, 300 ou 600 segundos); zero desliga o timer
// @Tags widgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param settings body dto.WidgetRefreshRequest true "Widget e intervalo"
// @Success 200 {object} dto.WidgetRefreshResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /widgets/refresh [post]
func (c *WidgetController) SetRefresh(ctx *gin.Context) {
	var request dto.WidgetRefreshRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	err := c.registry.SetWidgetRefresh(ctx, request.WidgetID, request.Interval)
	if err != nil {
		if errors.Is(err, widget.ErrUnknownWidget) || errors.Is(err, widget.ErrInvalidInterval) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Configuração inválida", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar atualização", err.Error()))
		return
	}

	message := fmt.Sprintf("Atualização automática a cada %d segundos", request.Interval)
	if request.Interval == 0 {
		message = "Atualização automática desligada"
	}

	ctx.JSON(http.StatusOK, dto.WidgetRefreshResponse{
		WidgetID: request.WidgetID,
		Interval: request.Interval,
		Message:  message,
	})
}

// Refresh executa uma atualização imediata de um widget
// @Summary Atualiza um widget imediatamente
// @Description Executa a busca de dados do widget uma vez, fora do timer
// @Tags widgets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do widget"
// @Success 200 {object} scheduler.Snapshot
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /widgets/{id}/refresh [post]
func (c *WidgetController) Refresh(ctx *gin.Context) {
	widgetID := ctx.Param("id")

	if err := c.registry.RefreshWidget(widgetID); err != nil {
		if errors.Is(err, scheduler.ErrWidgetNotRegistered) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Widget não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar widget", err.Error()))
		return
	}

	snapshot, err := c.registry.Snapshot(widgetID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao consultar widget", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// Get retorna o último estado conhecido de um widget
// @Summary Consulta um widget
// @Description Retorna o último resultado, intervalo e eventual erro de um widget
// @Tags widgets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do widget"
// @Success 200 {object} scheduler.Snapshot
// @Failure 404 {object} dto.ErrorResponse
// @Router /widgets/{id} [get]
func (c *WidgetController) Get(ctx *gin.Context) {
	snapshot, err := c.registry.Snapshot(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Widget não encontrado", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, snapshot)
}

// List retorna o estado de todos os widgets registrados
// @Summary Lista os widgets
// @Description Retorna o último estado conhecido de todos os widgets
// @Tags widgets
// @Produce json
// @Security Bearer
// @Success 200 {array} scheduler.Snapshot
// @Router /widgets [get]
func (c *WidgetController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.registry.Snapshots())
}

// Notifications retorna e limpa as notificações de falha pendentes
// @Summary Notificações de falha
// @Description Retorna os avisos transitórios de falhas de atualização e os remove da fila
// @Tags widgets
// @Produce json
// @Security Bearer
// @Success 200 {array} scheduler.Notification
// @Router /widgets/notifications [get]
func (c *WidgetController) Notifications(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.registry.Notifications())
}

// ClearAll remove todas as configurações de atualização automática
// @Summary Remove todas as configurações
// @Description Desliga todos os timers e remove as configurações persistidas
// @Tags widgets
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /widgets/settings [delete]
func (c *WidgetController) ClearAll(ctx *gin.Context) {
	if err := c.registry.ClearAll(ctx); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover configurações", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Configurações de atualização removidas", nil))
}
