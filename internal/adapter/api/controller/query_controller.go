package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/medbot-analytics/internal/adapter/api/dto"
	"github.com/hugohenrick/medbot-analytics/internal/domain/audit"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
	"github.com/hugohenrick/medbot-analytics/pkg/nlquery"
)

// QueryController gerencia as consultas em linguagem natural sobre a origem de dados
type QueryController struct {
	handler         *nlquery.Handler
	auditRepository audit.Repository
	logger          logger.Logger
}

// NewQueryController cria uma nova instância de QueryController.
// O handler pode ser nulo quando a chave da API Gemini não está configurada.
func NewQueryController(handler *nlquery.Handler, auditRepository audit.Repository, logger logger.Logger) *QueryController {
	return &QueryController{
		handler:         handler,
		auditRepository: auditRepository,
		logger:          logger,
	}
}

// NaturalQuery processa uma pergunta em linguagem natural
// @Summary Consulta em linguagem natural
// @Description Traduz a pergunta em um plano de consulta e o executa sobre a origem de dados
// @Tags query
// @Accept json
// @Produce json
// @Security Bearer
// @Param query body dto.NaturalQueryRequest true "Pergunta em linguagem natural"
// @Success 200 {object} nlquery.Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /natural-query [post]
func (c *QueryController) NaturalQuery(ctx *gin.Context) {
	if c.handler == nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			http.StatusInternalServerError,
			"Consultas em linguagem natural indisponíveis",
			"Verifique a configuração de GEMINI_API_KEY",
		))
		return
	}

	var request dto.NaturalQueryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	query := strings.TrimSpace(request.Query)
	if query == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", "A pergunta não pode ser vazia"))
		return
	}

	userID, _ := ctx.Get("user_id")
	userIDStr, _ := userID.(string)

	response := c.handler.Process(ctx, userIDStr, query)
	ctx.JSON(http.StatusOK, response)
}

// SampleQueries retorna perguntas de exemplo
// @Summary Perguntas de exemplo
// @Description Retorna exemplos de perguntas que o planejador sabe responder
// @Tags query
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SampleQueriesResponse
// @Router /sample-queries [get]
func (c *QueryController) SampleQueries(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SampleQueriesResponse{
		SampleQueries: nlquery.SampleQueries(),
	})
}

// DBStructure retorna a descrição do esquema da origem de dados
// @Summary Esquema da origem
// @Description Retorna a descrição textual do esquema consultável
// @Tags query
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DBStructureResponse
// @Router /db-structure [get]
func (c *QueryController) DBStructure(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.DBStructureResponse{
		Structure: nlquery.DBStructure(),
	})
}

// AuditLog retorna os registros de auditoria de consultas
// @Summary Auditoria de consultas
// @Description Retorna as consultas em linguagem natural processadas, da mais recente para a mais antiga
// @Tags query
// @Produce json
// @Security Bearer
// @Param limit query int false "Máximo de registros" default(50)
// @Param offset query int false "Deslocamento" default(0)
// @Success 200 {array} dto.QueryAuditResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /query-audit [get]
func (c *QueryController) AuditLog(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, err := c.auditRepository.List(ctx, limit, offset)
	if err != nil {
		c.logger.Error("Erro ao listar auditoria de consultas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar auditoria", err.Error()))
		return
	}

	response := make([]dto.QueryAuditResponse, len(records))
	for i, r := range records {
		response[i] = dto.ToQueryAuditResponse(r)
	}

	ctx.JSON(http.StatusOK, response)
}
