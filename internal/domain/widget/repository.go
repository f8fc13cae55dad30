package widget

import (
	"context"
)

// Repository define a interface para persistência das configurações de widgets
type Repository interface {
	// Save grava (ou substitui) a configuração de atualização de um widget
	Save(ctx context.Context, s *Settings) error

	// List retorna todas as configurações gravadas
	List(ctx context.Context) ([]*Settings, error)

	// Delete remove a configuração de um widget
	Delete(ctx context.Context, widgetID string) error

	// DeleteAll remove todas as configurações
	DeleteAll(ctx context.Context) error
}
