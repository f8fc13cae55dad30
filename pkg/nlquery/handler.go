package nlquery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	analyticsdomain "github.com/hugohenrick/medbot-analytics/internal/domain/analytics"
	"github.com/hugohenrick/medbot-analytics/internal/domain/audit"
	"github.com/hugohenrick/medbot-analytics/pkg/logger"
)

// ContentGenerator abstrai o modelo de linguagem que traduz a pergunta em plano
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Handler traduz perguntas em linguagem natural em planos de consulta
// estruturados, valida-os contra o esquema da origem e os executa
type Handler struct {
	generator ContentGenerator
	source    analyticsdomain.Source
	audit     audit.Repository
	logger    logger.Logger
	now       func() time.Time
}

// NewHandler cria uma nova instância de Handler.
// O repositório de auditoria é opcional; quando nulo, as consultas não são registradas.
func NewHandler(generator ContentGenerator, source analyticsdomain.Source, auditRepo audit.Repository, logger logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		source:    source,
		audit:     auditRepo,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Response é a resposta completa de uma consulta em linguagem natural
type Response struct {
	Success bool     `json:"success"`
	Query   string   `json:"query"`
	Results *Results `json:"results,omitempty"`
	Plan    *Plan    `json:"plan,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Process traduz, valida e executa uma pergunta em linguagem natural
func (h *Handler) Process(ctx context.Context, userID, query string) *Response {
	h.logger.Info("Processando consulta em linguagem natural", "query", query)
	started := h.now()

	response := h.process(ctx, query)
	response.Query = query

	h.record(ctx, userID, response, h.now().Sub(started))
	return response
}

func (h *Handler) process(ctx context.Context, query string) *Response {
	raw, err := h.generator.GenerateContent(ctx, buildPrompt(query))
	if err != nil {
		h.logger.Error("Erro ao gerar plano de consulta", "error", err)
		return &Response{Error: fmt.Sprintf("erro ao gerar plano de consulta: %v", err)}
	}

	var plan Plan
	if err := json.Unmarshal([]byte(extractJSON(raw)), &plan); err != nil {
		h.logger.Error("Modelo retornou plano não decodificável", "error", err)
		return &Response{Error: "o modelo não retornou um plano de consulta válido"}
	}

	if err := plan.Validate(); err != nil {
		h.logger.Warn("Plano de consulta rejeitado", "error", err)
		return &Response{Plan: &plan, Error: err.Error()}
	}

	if plan.Kind == PlanKindAnswer {
		return &Response{
			Success: true,
			Plan:    &plan,
			Results: normalize([]map[string]interface{}{
				{"answer": plan.Answer},
			}, plan.Summary),
		}
	}

	results, err := executePlan(ctx, h.source, &plan)
	if err != nil {
		h.logger.Error("Erro ao executar plano de consulta", "error", err, "collection", plan.Collection)
		return &Response{Plan: &plan, Error: fmt.Sprintf("erro ao executar consulta: %v", err)}
	}

	return &Response{Success: true, Plan: &plan, Results: results}
}

// record grava o resultado no registro de auditoria, quando configurado
func (h *Handler) record(ctx context.Context, userID string, response *Response, elapsed time.Duration) {
	if h.audit == nil {
		return
	}

	r := &audit.QueryRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		Query:      response.Query,
		Success:    response.Success,
		Error:      response.Error,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  h.now(),
	}
	if response.Results != nil {
		r.Summary = response.Results.Summary
	}

	if err := h.audit.Save(ctx, r); err != nil {
		h.logger.Error("Erro ao gravar auditoria de consulta", "error", err)
	}
}

// buildPrompt monta o prompt com o esquema da origem e as regras do plano
func buildPrompt(query string) string {
	return fmt.Sprintf(`You are a query planner for a medical chatbot analytics dashboard.
Given a natural language question about the database below, respond with a single JSON
object describing a query plan. Respond with JSON only, no explanations.

%s

Plan format:
{
  "kind": "query",
  "collection": "<one of: users, chats, conversations, unfound_drugs>",
  "filters": [{"field": "<field>", "operator": "<== != > >= < <= contains exists>", "value": <value>}],
  "fields": ["<fields to return, optional>"],
  "order_by": "<field, optional>",
  "order_desc": <true|false>,
  "limit": <max records, up to 100>,
  "aggregate": "<count | sum | avg | group_count, optional>",
  "group_by": "<field for sum/avg/group_count>",
  "summary": "<short description of what the results show>"
}

Rules:
1. Use only the collections and fields listed in the database structure.
2. For date comparisons, use the "YYYY-MM-DD HH:MM:SS" format.
3. For questions that do not need data (greetings, questions about the dashboard itself),
   respond with {"kind": "answer", "answer": "<your answer>"}.
4. Prefer aggregates over raw listings when the question asks for totals or distributions.

Question: %q`, dbStructure, query)
}

// SampleQueries retorna exemplos de perguntas que o planejador sabe responder
func SampleQueries() []string {
	return []string{
		"Show me the top 10 most frequently searched unfound drugs",
		"How many users registered in the last month?",
		"Show me unfound drugs searched more than 5 times",
		"What's the average number of messages per chat session?",
		"Show me the distribution of users by gender",
		"Which users have incomplete profiles?",
		"Show unfound drugs by their search frequency",
		"What are the latest unfound drug searches?",
		"List all tablet names in unfound drugs",
		"Which unfound drugs have combination names?",
		"How many users signed in with Google?",
		"Show conversations that mention paracetamol",
	}
}

// DBStructure retorna a descrição textual do esquema da origem
func DBStructure() string {
	return dbStructure
}
