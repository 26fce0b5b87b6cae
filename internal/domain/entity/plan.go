package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan é um plano de assinatura do SaaS (cobrança mensal).
type Plan struct {
	ID           string
	Name         string
	MonthlyPrice decimal.Decimal
	MaxUsers     int
	MaxCountings int // contagens por mês; 0 = ilimitado
	CreatedAt    time.Time
}

// Status de assinatura.
const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionPastDue  = "past_due"
)

// Subscription vincula uma empresa a um plano.
type Subscription struct {
	ID         string
	CompanyID  string
	PlanID     string
	Status     string // active, canceled, past_due
	StartedAt  time.Time
	CanceledAt *time.Time
}
