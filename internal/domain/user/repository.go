package user

import (
	"context"
)

// Repository define a interface para operações de repositório de operadores
type Repository interface {
	// Create cria um novo operador
	Create(ctx context.Context, u *User) error

	// FindByID busca um operador pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um operador pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os operadores com paginação
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update atualiza os dados de um operador existente
	Update(ctx context.Context, u *User) error

	// Delete remove um operador do sistema
	Delete(ctx context.Context, id string) error

	// UpdateLastLogin atualiza o timestamp de último login do operador
	UpdateLastLogin(ctx context.Context, id string) error

	// Count conta quantos operadores existem
	Count(ctx context.Context) (int, error)
}
