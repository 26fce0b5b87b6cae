package entity

import "time"

// Company representa uma organização/tenant do sistema. Toda entidade é
// escopada por CompanyID em cada consulta.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
