package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

var (
	_ repository.PlanRepository         = (*PlanRepo)(nil)
	_ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)
	_ repository.InvoiceRepository      = (*InvoiceRepo)(nil)
)

// PlanRepo implementação de PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

const planColumns = `id, name, monthly_price, max_users, max_countings, created_at`

func (r *PlanRepo) Create(p *entity.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.MonthlyPrice, p.MaxUsers, p.MaxCountings, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.MonthlyPrice, &p.MaxUsers, &p.MaxCountings, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	return &p, nil
}

func (r *PlanRepo) List() ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY monthly_price`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.MonthlyPrice, &p.MaxUsers, &p.MaxCountings, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SubscriptionRepo implementação de SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

const subscriptionColumns = `id, company_id, plan_id, status, started_at, canceled_at`

func (r *SubscriptionRepo) Create(s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.PlanID, s.Status, s.StartedAt, s.CanceledAt)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) GetActiveByCompany(companyID string) (*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE company_id = $1 AND status = $2
		ORDER BY started_at DESC LIMIT 1`
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, companyID, entity.SubscriptionActive).Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.StartedAt, &s.CanceledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepo) Cancel(id string, canceledAt time.Time) error {
	query := `
		UPDATE subscriptions SET status = $2, canceled_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.SubscriptionCanceled, canceledAt, entity.SubscriptionActive)
	if err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InvoiceRepo implementação de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, subscription_id, number, amount, due_date, status, paid_at, created_at`

func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.SubscriptionID, inv.Number, inv.Amount,
		inv.DueDate, inv.Status, inv.PaidAt, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(companyID, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND id = $2`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.SubscriptionID, &inv.Number, &inv.Amount,
		&inv.DueDate, &inv.Status, &inv.PaidAt, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY due_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.SubscriptionID, &inv.Number, &inv.Amount,
			&inv.DueDate, &inv.Status, &inv.PaidAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// NextNumberSeq incrementa o contador de faturas da empresa (upsert atômico).
func (r *InvoiceRepo) NextNumberSeq(companyID string) (int, error) {
	query := `
		INSERT INTO invoice_counters (company_id, seq) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET seq = invoice_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice seq: %w", err)
	}
	return seq, nil
}

// MarkPaid é condicional: o WHERE exige status != 'paid' para tornar o
// pagamento idempotente sob requisições concorrentes.
func (r *InvoiceRepo) MarkPaid(companyID, id string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE invoices SET status = $3, paid_at = $4
		WHERE company_id = $1 AND id = $2 AND status != $3`
	tag, err := r.q.Exec(context.Background(), query, companyID, id, entity.InvoicePaid, paidAt)
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InvoiceRepo) MarkOverdue(now time.Time) (int64, error) {
	query := `
		UPDATE invoices SET status = $1
		WHERE status = $2 AND due_date < $3`
	tag, err := r.q.Exec(context.Background(), query, entity.InvoiceOverdue, entity.InvoiceOpen, now)
	if err != nil {
		return 0, fmt.Errorf("mark invoices overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}
