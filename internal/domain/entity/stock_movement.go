package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	MovementTypeCountingApproved = "counting_approved" // reconciliação de contagem aprovada
	MovementTypeManualAdjust     = "manual_adjust"     // ajuste manual (outros fluxos)
)

// StockMovement é um lançamento imutável do livro de movimentações (append-only).
// O sentido do movimento é recuperável por QuantityAfter − QuantityBefore;
// não existe tipo separado de entrada/saída para a reconciliação.
type StockMovement struct {
	ID             string
	CompanyID      string
	ProductID      string
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	MovementType   string
	ReferenceID    string // ID da contagem que originou o lançamento
	UserID         string // aprovador
	Notes          string
	CreatedAt      time.Time
}
