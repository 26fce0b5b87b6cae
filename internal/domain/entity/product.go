package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item de estoque de uma empresa, vinculado a um setor.
// CurrentStock é o nível oficial: após uma contagem aprovada ele reflete a
// quantidade contada; entre contagens pode ser alterado por outros fluxos.
type Product struct {
	ID           string
	CompanyID    string
	SectorID     string
	Name         string
	Unit         string          // un, kg, l, cx...
	CurrentStock decimal.Decimal // fracionário permitido (unidades por peso)
	MinStock     decimal.Decimal // alerta de estoque mínimo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
