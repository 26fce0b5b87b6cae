package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// SubscribeRequest vincula a empresa a um plano.
type SubscribeRequest struct {
	PlanID string `json:"plan_id"`
}

// InvoiceResponse fatura de assinatura.
type InvoiceResponse struct {
	ID      string          `json:"id"`
	Number  string          `json:"number"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at,omitempty"`
}

// ToInvoiceResponse converte a entidade.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:      inv.ID,
		Number:  inv.Number,
		Amount:  inv.Amount,
		DueDate: inv.DueDate,
		Status:  inv.Status,
		PaidAt:  inv.PaidAt,
	}
}
