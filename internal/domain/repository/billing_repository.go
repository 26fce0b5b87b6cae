package repository

import (
	"time"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// PlanRepository define o porto de persistência de planos de assinatura.
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	List() ([]*entity.Plan, error)
}

// SubscriptionRepository define o porto de persistência de assinaturas.
// GetActiveByCompany devolve ErrNotFound quando não há assinatura ativa.
type SubscriptionRepository interface {
	Create(sub *entity.Subscription) error
	GetActiveByCompany(companyID string) (*entity.Subscription, error)
	Cancel(id string, canceledAt time.Time) error
}

// InvoiceRepository define o porto de contas a receber.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(companyID, id string) (*entity.Invoice, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.Invoice, error)
	// NextNumberSeq devolve o próximo sequencial de fatura da empresa.
	NextNumberSeq(companyID string) (int, error)
	// MarkPaid só tem efeito se a fatura ainda não estiver paga; devolve
	// false quando nenhuma linha foi afetada.
	MarkPaid(companyID, id string, paidAt time.Time) (bool, error)
	MarkOverdue(now time.Time) (int64, error)
}
