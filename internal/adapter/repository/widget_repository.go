package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/medbot-analytics/internal/domain/widget"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSettingsNotFound indica que não há configuração gravada para o widget
var ErrSettingsNotFound = errors.New("configuração de widget não encontrada")

// WidgetRepository implementa a interface widget.Repository usando PostgreSQL
type WidgetRepository struct {
	db *pgxpool.Pool
}

// NewWidgetRepository cria uma nova instância de WidgetRepository
func NewWidgetRepository(db *pgxpool.Pool) widget.Repository {
	return &WidgetRepository{
		db: db,
	}
}

// Save implementa widget.Repository.Save
func (r *WidgetRepository) Save(ctx context.Context, s *widget.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO widget_settings (widget_id, interval_seconds, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (widget_id)
		DO UPDATE SET interval_seconds = EXCLUDED.interval_seconds, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query, s.WidgetID, s.IntervalSeconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("falha ao gravar configuração do widget: %w", err)
	}

	return nil
}

// List implementa widget.Repository.List
func (r *WidgetRepository) List(ctx context.Context) ([]*widget.Settings, error) {
	rows, err := r.db.Query(ctx, "SELECT widget_id, interval_seconds, updated_at FROM widget_settings")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar configurações de widgets: %w", err)
	}
	defer rows.Close()

	var settings []*widget.Settings
	for rows.Next() {
		var s widget.Settings
		if err := rows.Scan(&s.WidgetID, &s.IntervalSeconds, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler configuração de widget: %w", err)
		}
		settings = append(settings, &s)
	}

	return settings, rows.Err()
}

// Delete implementa widget.Repository.Delete
func (r *WidgetRepository) Delete(ctx context.Context, widgetID string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM widget_settings WHERE widget_id = $1", widgetID)
	if err != nil {
		return fmt.Errorf("falha ao excluir configuração do widget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}

// DeleteAll implementa widget.Repository.DeleteAll
func (r *WidgetRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM widget_settings"); err != nil {
		return fmt.Errorf("falha ao limpar configurações de widgets: %w", err)
	}
	return nil
}
