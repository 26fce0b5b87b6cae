package entity

import "time"

// Sector é uma área física ou lógica de armazenamento dentro de uma empresa
// (ex.: "Cozinha", "Estoque Seco", "Câmara Fria").
type Sector struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
