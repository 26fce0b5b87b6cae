package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaestoque/contagem-api/internal/application/billing"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória (mesma semântica das implementações PostgreSQL:
// GetActiveByCompany devolve ErrNotFound sem assinatura ativa)
// ──────────────────────────────────────────────────────────────────────────────

type memPlanRepo struct {
	byID map[string]*entity.Plan
}

func newMemPlanRepo(plans ...*entity.Plan) *memPlanRepo {
	r := &memPlanRepo{byID: map[string]*entity.Plan{}}
	for _, p := range plans {
		r.byID[p.ID] = p
	}
	return r
}

func (r *memPlanRepo) Create(p *entity.Plan) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memPlanRepo) GetByID(id string) (*entity.Plan, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memPlanRepo) List() ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

type memSubRepo struct {
	subs []*entity.Subscription
}

func (r *memSubRepo) Create(sub *entity.Subscription) error {
	r.subs = append(r.subs, sub)
	return nil
}

func (r *memSubRepo) GetActiveByCompany(companyID string) (*entity.Subscription, error) {
	for _, s := range r.subs {
		if s.CompanyID == companyID && s.Status == entity.SubscriptionActive {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memSubRepo) Cancel(id string, canceledAt time.Time) error {
	for _, s := range r.subs {
		if s.ID == id {
			s.Status = entity.SubscriptionCanceled
			s.CanceledAt = &canceledAt
			return nil
		}
	}
	return domain.ErrNotFound
}

func basicPlan() *entity.Plan {
	return &entity.Plan{
		ID:           "plano-basico",
		Name:         "Básico",
		MonthlyPrice: decimal.RequireFromString("99.90"),
		MaxUsers:     3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Assinatura
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscribe_SemAssinaturaAtivaAssina(t *testing.T) {
	subs := &memSubRepo{}
	uc := billing.NewSubscriptionUseCase(newMemPlanRepo(basicPlan()), subs)

	sub, err := uc.Subscribe("empresa-a", "plano-basico")
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "plano-basico", sub.PlanID)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	require.Len(t, subs.subs, 1)
}

func TestSubscribe_AssinaturaAtivaExistenteConflita(t *testing.T) {
	subs := &memSubRepo{}
	uc := billing.NewSubscriptionUseCase(newMemPlanRepo(basicPlan()), subs)

	_, err := uc.Subscribe("empresa-a", "plano-basico")
	require.NoError(t, err)

	_, err = uc.Subscribe("empresa-a", "plano-basico")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, subs.subs, 1)
}

func TestSubscribe_PlanoInexistente(t *testing.T) {
	uc := billing.NewSubscriptionUseCase(newMemPlanRepo(), &memSubRepo{})

	_, err := uc.Subscribe("empresa-a", "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscribe_AposCancelamentoAssinaDeNovo(t *testing.T) {
	subs := &memSubRepo{}
	uc := billing.NewSubscriptionUseCase(newMemPlanRepo(basicPlan()), subs)

	_, err := uc.Subscribe("empresa-a", "plano-basico")
	require.NoError(t, err)
	require.NoError(t, uc.Cancel("empresa-a"))

	sub, err := uc.Subscribe("empresa-a", "plano-basico")
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
}

func TestCancel_SemAssinaturaAtiva(t *testing.T) {
	uc := billing.NewSubscriptionUseCase(newMemPlanRepo(basicPlan()), &memSubRepo{})

	err := uc.Cancel("empresa-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
