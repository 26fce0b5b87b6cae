package counting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	counting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aprovação: reconciliação de estoque com lote de lançamentos + CAS final
// ──────────────────────────────────────────────────────────────────────────────

type approveFixture struct {
	uc        *counting.ApproveUseCase
	countings *memCountingRepo
	items     *memItemRepo
	products  *memProductRepo
	movements *memMovementRepo
	notifs    *memNotifRepo
}

func newApproveFixture(products ...*entity.Product) *approveFixture {
	f := &approveFixture{
		countings: newMemCountingRepo(),
		items:     &memItemRepo{},
		products:  newMemProductRepo(products...),
		movements: &memMovementRepo{},
		notifs:    &memNotifRepo{},
	}
	f.uc = counting.NewApproveUseCase(f.countings, f.items, f.products, f.movements, f.notifs)
	return f
}

func TestApprove_ReconciliaDiferencas(t *testing.T) {
	f := newApproveFixture(product("p1", "8"), product("p2", "5"))
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10"))) // 8 → 10
	require.NoError(t, f.items.Upsert(countedItem("c1", "p2", "5")))  // sem diferença

	sum, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.MovementsCreated, "só a diferença não nula gera lançamento")

	// Estoque confirmado no valor contado.
	p1, _ := f.products.GetByID(companyA, "p1")
	assert.True(t, p1.CurrentStock.Equal(decimal.RequireFromString("10")))
	p2, _ := f.products.GetByID(companyA, "p2")
	assert.True(t, p2.CurrentStock.Equal(decimal.RequireFromString("5")))

	// Lançamento com antes/depois e referência à contagem.
	require.Len(t, f.movements.movements, 1)
	m := f.movements.movements[0]
	assert.Equal(t, "p1", m.ProductID)
	assert.True(t, m.QuantityBefore.Equal(decimal.RequireFromString("8")))
	assert.True(t, m.QuantityAfter.Equal(decimal.RequireFromString("10")))
	assert.Equal(t, entity.MovementTypeCountingApproved, m.MovementType)
	assert.Equal(t, "c1", m.ReferenceID)
	assert.Equal(t, "aprovador-1", m.UserID)

	// Status terminal + notificação.
	c, _ := f.countings.GetByID(companyA, "c1")
	assert.Equal(t, entity.StatusApproved, c.Status)
	assert.NotNil(t, c.ApprovedAt)
	approved := f.notifs.ofType(entity.NotificationCountingApproved)
	require.Len(t, approved, 1)
	assert.NotEmpty(t, approved[0].ID)
}

func TestApprove_SemDiferencasAprovaSemLancamentos(t *testing.T) {
	f := newApproveFixture(product("p1", "3.5"))
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "3.50"))) // igual (escala diferente)

	sum, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.MovementsCreated)
	assert.Empty(t, f.movements.movements)

	c, _ := f.countings.GetByID(companyA, "c1")
	assert.Equal(t, entity.StatusApproved, c.Status)
}

func TestApprove_SemItensAprova(t *testing.T) {
	f := newApproveFixture()
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)

	sum, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.MovementsCreated)
}

func TestApprove_ProdutoRemovidoEhPulado(t *testing.T) {
	f := newApproveFixture(product("p1", "8"))
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10")))
	require.NoError(t, f.items.Upsert(countedItem("c1", "p-removido", "4")))

	sum, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.MovementsCreated, "item órfão tolerado e pulado")
}

func TestApprove_StatusErradoRejeitadoAntesDeQualquerEscrita(t *testing.T) {
	for _, st := range []entity.CountingStatus{
		entity.StatusPending, entity.StatusInProgress, entity.StatusApproved, entity.StatusExpired,
	} {
		t.Run(string(st), func(t *testing.T) {
			f := newApproveFixture(product("p1", "8"))
			seedCounting(f.countings, "c1", st, nil)
			require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10")))

			_, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
			var itErr *domain.IllegalTransitionError
			require.ErrorAs(t, err, &itErr)
			assert.Empty(t, f.movements.movements)
			p1, _ := f.products.GetByID(companyA, "p1")
			assert.True(t, p1.CurrentStock.Equal(decimal.RequireFromString("8")), "estoque intocado")
		})
	}
}

func TestApprove_NaoEncontrada(t *testing.T) {
	f := newApproveFixture()
	_, err := f.uc.Approve(context.Background(), companyA, "inexistente", "aprovador-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_FalhaNoLoteAbortaTudo(t *testing.T) {
	f := newApproveFixture(product("p1", "8"))
	f.movements.failBatch = errors.New("conexão perdida")
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10")))

	_, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.Error(t, err)

	// Nada aplicado: estoque e status intactos, aprovação pode ser repetida.
	p1, _ := f.products.GetByID(companyA, "p1")
	assert.True(t, p1.CurrentStock.Equal(decimal.RequireFromString("8")))
	c, _ := f.countings.GetByID(companyA, "c1")
	assert.Equal(t, entity.StatusCompleted, c.Status)
}

func TestApprove_FalhaParcialDeEstoque(t *testing.T) {
	f := newApproveFixture(product("p1", "8"), product("p2", "5"))
	f.products.failStock["p2"] = errors.New("deadlock detectado")
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10")))
	require.NoError(t, f.items.Upsert(countedItem("c1", "p2", "7")))

	_, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	var prErr *domain.PartialReconciliationError
	require.ErrorAs(t, err, &prErr)
	assert.Equal(t, 2, prErr.MovementsCreated)
	assert.Equal(t, []string{"p1"}, prErr.UpdatedProducts)
	assert.Equal(t, []string{"p2"}, prErr.FailedProducts)

	// O produto aplicado NÃO é revertido; o que falhou permanece no valor antigo.
	p1, _ := f.products.GetByID(companyA, "p1")
	assert.True(t, p1.CurrentStock.Equal(decimal.RequireFromString("10")))
	p2, _ := f.products.GetByID(companyA, "p2")
	assert.True(t, p2.CurrentStock.Equal(decimal.RequireFromString("5")))

	// Status não avança: o operador revisa e repete a aprovação.
	c, _ := f.countings.GetByID(companyA, "c1")
	assert.Equal(t, entity.StatusCompleted, c.Status)
}

func TestApprove_SegundaAprovacaoRejeitada(t *testing.T) {
	// Aprovar de novo uma contagem já approved é rejeitado antes de qualquer
	// escrita: o CAS sobre completed fecha a corrida de dupla aprovação.
	f := newApproveFixture(product("p1", "8"))
	seedCounting(f.countings, "c1", entity.StatusCompleted, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "8"))) // sem diferença

	// Primeira aprovação vence.
	_, err := f.uc.Approve(context.Background(), companyA, "c1", "aprovador-1")
	require.NoError(t, err)

	// Segunda é rejeitada antes de qualquer escrita (status já approved).
	_, err = f.uc.Approve(context.Background(), companyA, "c1", "aprovador-2")
	var itErr *domain.IllegalTransitionError
	require.ErrorAs(t, err, &itErr)
	assert.Len(t, f.notifs.ofType(entity.NotificationCountingApproved), 1)
}
