package dto

import (
	"time"

	"github.com/hugohenrick/medbot-analytics/internal/domain/audit"
)

// NaturalQueryRequest representa uma pergunta em linguagem natural sobre os dados
type NaturalQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// SampleQueriesResponse representa a lista de perguntas de exemplo
type SampleQueriesResponse struct {
	SampleQueries []string `json:"sample_queries"`
}

// DBStructureResponse representa a descrição textual do esquema da origem
type DBStructureResponse struct {
	Structure string `json:"structure"`
}

// QueryAuditResponse representa um registro de auditoria de consulta
type QueryAuditResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Query      string    `json:"query"`
	Success    bool      `json:"success"`
	Summary    string    `json:"summary,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToQueryAuditResponse converte um registro de auditoria do domínio para DTO de resposta
func ToQueryAuditResponse(r *audit.QueryRecord) QueryAuditResponse {
	return QueryAuditResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Query:      r.Query,
		Success:    r.Success,
		Summary:    r.Summary,
		Error:      r.Error,
		DurationMS: r.DurationMS,
		CreatedAt:  r.CreatedAt,
	}
}
