package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// InvoicePDFData dados necessários para renderizar a fatura em PDF.
type InvoicePDFData struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	PlanName string
}

// InvoicePDFGenerator gera a fatura em PDF.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(data *InvoicePDFData) ([]byte, error)
}

// InvoiceUseCase contas a receber do back-office: geração da fatura mensal da
// assinatura, listagem (abertas/vencidas), baixa de pagamento e PDF.
type InvoiceUseCase struct {
	planRepo    repository.PlanRepository
	subRepo     repository.SubscriptionRepository
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	notifRepo   repository.NotificationRepository
	pdf         InvoicePDFGenerator
}

// NewInvoiceUseCase constrói o caso de uso.
func NewInvoiceUseCase(
	planRepo repository.PlanRepository,
	subRepo repository.SubscriptionRepository,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	notifRepo repository.NotificationRepository,
	pdf InvoicePDFGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		planRepo:    planRepo,
		subRepo:     subRepo,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		notifRepo:   notifRepo,
		pdf:         pdf,
	}
}

// GenerateMonthly gera a fatura do mês corrente da assinatura ativa.
// Número sequencial por empresa no formato "FAT-<ano>-<seq>".
func (uc *InvoiceUseCase) GenerateMonthly(companyID string) (*entity.Invoice, error) {
	sub, err := uc.subRepo.GetActiveByCompany(companyID)
	if err != nil {
		return nil, err // ErrNotFound: sem assinatura ativa
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	seq, err := uc.invoiceRepo.NextNumberSeq(companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	inv := &entity.Invoice{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		SubscriptionID: sub.ID,
		Number:         fmt.Sprintf("FAT-%d-%03d", now.Year(), seq),
		Amount:         plan.MonthlyPrice,
		DueDate:        now.AddDate(0, 0, 10),
		Status:         entity.InvoiceOpen,
		CreatedAt:      now,
	}
	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// List lista faturas da empresa, opcionalmente por status.
func (uc *InvoiceUseCase) List(companyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	switch status {
	case "", entity.InvoiceOpen, entity.InvoicePaid, entity.InvoiceOverdue:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.invoiceRepo.ListByCompany(companyID, status, limit, offset)
}

// MarkPaid dá baixa na fatura. Baixa dupla é rejeitada (nenhuma linha
// afetada na escrita condicional).
func (uc *InvoiceUseCase) MarkPaid(companyID, invoiceID string) (*entity.Invoice, error) {
	ok, err := uc.invoiceRepo.MarkPaid(companyID, invoiceID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConflict // inexistente ou já paga
	}
	return uc.invoiceRepo.GetByID(companyID, invoiceID)
}

// PDF gera a fatura em PDF e devolve os bytes com o nome de arquivo sugerido.
// O nome do plano é resolvido pela assinatura ativa; faturas de assinaturas já
// canceladas saem sem o nome do plano.
func (uc *InvoiceUseCase) PDF(companyID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	planName := ""
	if sub, err := uc.subRepo.GetActiveByCompany(companyID); err == nil && sub.ID == inv.SubscriptionID {
		if plan, err := uc.planRepo.GetByID(sub.PlanID); err == nil {
			planName = plan.Name
		}
	}
	out, err := uc.pdf.GenerateInvoicePDF(&InvoicePDFData{Invoice: inv, Company: company, PlanName: planName})
	if err != nil {
		return nil, "", err
	}
	return out, fmt.Sprintf("fatura-%s.pdf", inv.Number), nil
}

// SweepOverdue marca como vencidas as faturas abertas com DueDate no passado.
// Invocado pelo mesmo ticker da varredura de contagens.
func (uc *InvoiceUseCase) SweepOverdue() (int64, error) {
	return uc.invoiceRepo.MarkOverdue(time.Now())
}
