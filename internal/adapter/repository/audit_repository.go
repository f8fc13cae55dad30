package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/medbot-analytics/internal/domain/audit"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository implementa a interface audit.Repository usando PostgreSQL
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository cria uma nova instância de AuditRepository
func NewAuditRepository(db *pgxpool.Pool) audit.Repository {
	return &AuditRepository{
		db: db,
	}
}

// Save implementa audit.Repository.Save
func (r *AuditRepository) Save(ctx context.Context, rec *audit.QueryRecord) error {
	query := `
		INSERT INTO query_audit (id, user_id, query, success, summary, error, duration_ms, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Query,
		rec.Success,
		rec.Summary,
		rec.Error,
		rec.DurationMS,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao gravar auditoria de consulta: %w", err)
	}

	return nil
}

// List implementa audit.Repository.List
func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]*audit.QueryRecord, error) {
	query := `
		SELECT id, COALESCE(user_id::text, ''), query, success,
		       COALESCE(summary, ''), COALESCE(error, ''), duration_ms, created_at
		FROM query_audit
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar auditoria de consultas: %w", err)
	}
	defer rows.Close()

	var records []*audit.QueryRecord
	for rows.Next() {
		var rec audit.QueryRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query, &rec.Success,
			&rec.Summary, &rec.Error, &rec.DurationMS, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler registro de auditoria: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
