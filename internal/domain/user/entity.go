package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role representa o papel/função do operador do dashboard
type Role string

// Status representa o status do operador
type Status string

// Constantes para Role
const (
	RoleAdmin  Role = "admin"  // Administrador do dashboard
	RoleViewer Role = "viewer" // Acesso somente leitura aos painéis
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Operador ativo
	StatusInactive Status = "inactive" // Operador inativo
)

// User representa um operador do dashboard de análises
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetPassword configura a senha do operador com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o operador está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o operador é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
