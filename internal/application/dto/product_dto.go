package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// CreateProductRequest cadastro de produto.
type CreateProductRequest struct {
	SectorID     string          `json:"sector_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest atualização de produto (estoque muda só por movimentação).
type UpdateProductRequest struct {
	SectorID string          `json:"sector_id"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// ProductResponse produto serializado.
type ProductResponse struct {
	ID           string          `json:"id"`
	SectorID     string          `json:"sector_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToProductResponse converte a entidade.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SectorID:     p.SectorID,
		Name:         p.Name,
		Unit:         p.Unit,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CreatedAt:    p.CreatedAt,
	}
}

// SectorRequest criação/atualização de setor.
type SectorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MovementResponse lançamento do livro de movimentações.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	MovementType   string          `json:"movement_type"`
	ReferenceID    string          `json:"reference_id"`
	UserID         string          `json:"user_id"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
