package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountedItem é a quantidade contada de um produto dentro de uma contagem.
// No máximo um registro por (CountingID, ProductID): o repositório faz upsert
// e a última gravação vence.
type CountedItem struct {
	ID              string
	CountingID      string
	ProductID       string
	CountedQuantity decimal.Decimal // ≥ 0; fracionário permitido (unidades por peso)
	Notes           string
	CountedBy       string
	CountedAt       time.Time
}
