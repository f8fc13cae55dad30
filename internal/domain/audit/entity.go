package audit

import (
	"context"
	"time"
)

// QueryRecord representa o registro de auditoria de uma consulta em linguagem natural
type QueryRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Query      string    `json:"query"`
	Success    bool      `json:"success"`
	Summary    string    `json:"summary,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository define a interface para o registro de auditoria de consultas
type Repository interface {
	// Save grava um registro de consulta
	Save(ctx context.Context, r *QueryRecord) error

	// List retorna os registros mais recentes, em ordem decrescente de data
	List(ctx context.Context, limit, offset int) ([]*QueryRecord, error)
}
