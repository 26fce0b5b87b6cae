package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de fatura (contas a receber).
const (
	InvoiceOpen    = "open"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Invoice é uma fatura de assinatura (contas a receber do back-office).
type Invoice struct {
	ID             string
	CompanyID      string
	SubscriptionID string
	Number         string // sequencial por empresa, ex. "FAT-2026-001"
	Amount         decimal.Decimal
	DueDate        time.Time
	Status         string // open, paid, overdue
	PaidAt         *time.Time
	CreatedAt      time.Time
}
