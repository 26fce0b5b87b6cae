package entity

import "time"

// Perfis válidos para User.
const (
	RoleAdmin    = "admin"
	RoleGestor   = "gestor"
	RoleOperador = "operador"
)

// User representa um usuário do back-office (pertence a uma Company).
// O colaborador de campo que executa a contagem não é User: recebe apenas
// o link público com ShareToken.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro depois de persistir
	Name         string
	Role         string // admin, gestor, operador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
