package counting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	counting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Link público: folha de contagem do colaborador no celular
// ──────────────────────────────────────────────────────────────────────────────

type publicFixture struct {
	uc        *counting.PublicUseCase
	countings *memCountingRepo
	items     *memItemRepo
	products  *memProductRepo
	notifs    *memNotifRepo
}

func newPublicFixture(products ...*entity.Product) *publicFixture {
	f := &publicFixture{
		countings: newMemCountingRepo(),
		items:     &memItemRepo{},
		products:  newMemProductRepo(products...),
		notifs:    &memNotifRepo{},
	}
	f.uc = counting.NewPublicUseCase(f.countings, f.items, f.products, f.notifs)
	return f
}

func TestPublic_GetByToken(t *testing.T) {
	f := newPublicFixture(product("p1", "8"), product("p2", "5"))
	c := seedCounting(f.countings, "c1", entity.StatusInProgress, nil)
	require.NoError(t, f.items.Upsert(countedItem("c1", "p1", "10")))

	sheet, err := f.uc.GetByToken(context.Background(), c.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, "c1", sheet.Counting.ID)
	assert.Len(t, sheet.Products, 2, "produtos dos setores cobertos")
	assert.Len(t, sheet.Items, 1)
}

func TestPublic_TokenInvalido(t *testing.T) {
	f := newPublicFixture()

	_, err := f.uc.GetByToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.GetByToken(context.Background(), "token-desconhecido")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublic_StartByToken(t *testing.T) {
	f := newPublicFixture()
	c := seedCounting(f.countings, "c1", entity.StatusPending, nil)

	out, err := f.uc.StartByToken(context.Background(), c.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, out.Status)
	assert.NotNil(t, out.StartedAt)

	// Iniciar de novo é transição ilegal.
	_, err = f.uc.StartByToken(context.Background(), c.ShareToken)
	var itErr *domain.IllegalTransitionError
	require.ErrorAs(t, err, &itErr)
}

func TestPublic_StartExpiraVencidaAntes(t *testing.T) {
	f := newPublicFixture()
	past := time.Now().Add(-time.Hour)
	c := seedCounting(f.countings, "c1", entity.StatusPending, func(c *entity.Counting) {
		c.ExpiresAt = &past
	})

	_, err := f.uc.StartByToken(context.Background(), c.ShareToken)
	var itErr *domain.IllegalTransitionError
	require.ErrorAs(t, err, &itErr)
	assert.Equal(t, string(entity.StatusExpired), itErr.From)
}

func TestPublic_SubmitItem(t *testing.T) {
	f := newPublicFixture(product("p1", "8"))
	c := seedCounting(f.countings, "c1", entity.StatusInProgress, nil)

	item, err := f.uc.SubmitItem(context.Background(), c.ShareToken, dto.SubmitItemRequest{
		ProductID: "p1",
		Quantity:  decimal.RequireFromString("7.25"),
		Notes:     "caixa aberta no fundo",
	})
	require.NoError(t, err)
	assert.True(t, item.CountedQuantity.Equal(decimal.RequireFromString("7.25")))
	// Sem CountedBy informado, assume o colaborador designado.
	assert.Equal(t, c.EmployeeName, item.CountedBy)

	// Reenvio do mesmo produto substitui (upsert, a última gravação vence).
	_, err = f.uc.SubmitItem(context.Background(), c.ShareToken, dto.SubmitItemRequest{
		ProductID: "p1",
		Quantity:  decimal.RequireFromString("9"),
		CountedBy: "Ana",
	})
	require.NoError(t, err)

	items, err := f.items.ListByCounting("c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].CountedQuantity.Equal(decimal.RequireFromString("9")))
	assert.Equal(t, "Ana", items[0].CountedBy)
}

func TestPublic_SubmitItemValidacoes(t *testing.T) {
	f := newPublicFixture(product("p1", "8"))
	c := seedCounting(f.countings, "c1", entity.StatusInProgress, nil)
	ctx := context.Background()

	_, err := f.uc.SubmitItem(ctx, c.ShareToken, dto.SubmitItemRequest{
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "produto obrigatório")

	_, err = f.uc.SubmitItem(ctx, c.ShareToken, dto.SubmitItemRequest{
		ProductID: "p1",
		Quantity:  decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade negativa")

	_, err = f.uc.SubmitItem(ctx, c.ShareToken, dto.SubmitItemRequest{
		ProductID: "p-inexistente",
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublic_SubmitItemForaDeInProgress(t *testing.T) {
	for _, st := range []entity.CountingStatus{
		entity.StatusPending, entity.StatusCompleted, entity.StatusApproved, entity.StatusExpired,
	} {
		t.Run(string(st), func(t *testing.T) {
			f := newPublicFixture(product("p1", "8"))
			c := seedCounting(f.countings, "c1", st, nil)

			_, err := f.uc.SubmitItem(context.Background(), c.ShareToken, dto.SubmitItemRequest{
				ProductID: "p1",
				Quantity:  decimal.NewFromInt(1),
			})
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestPublic_FinishByToken(t *testing.T) {
	f := newPublicFixture()
	c := seedCounting(f.countings, "c1", entity.StatusInProgress, nil)

	out, err := f.uc.FinishByToken(context.Background(), c.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, out.Status)
	assert.NotNil(t, out.CompletedAt)

	// Back-office é avisado para aprovar.
	finished := f.notifs.ofType(entity.NotificationCountingFinished)
	require.Len(t, finished, 1)
	assert.NotEmpty(t, finished[0].ID)
	assert.Equal(t, "c1", finished[0].ReferenceID)
	assert.Contains(t, finished[0].Message, c.InternalID)

	// Encerrar de novo é transição ilegal.
	_, err = f.uc.FinishByToken(context.Background(), c.ShareToken)
	var itErr *domain.IllegalTransitionError
	require.ErrorAs(t, err, &itErr)
}

func TestPublic_FluxoCompletoDoColaborador(t *testing.T) {
	// pending → start → contar dois produtos → finish
	f := newPublicFixture(product("p1", "8"), product("p2", "5"))
	c := seedCounting(f.countings, "c1", entity.StatusPending, nil)
	ctx := context.Background()

	_, err := f.uc.StartByToken(ctx, c.ShareToken)
	require.NoError(t, err)

	for id, qty := range map[string]string{"p1": "10", "p2": "5"} {
		_, err = f.uc.SubmitItem(ctx, c.ShareToken, dto.SubmitItemRequest{
			ProductID: id, Quantity: decimal.RequireFromString(qty),
		})
		require.NoError(t, err)
	}

	out, err := f.uc.FinishByToken(ctx, c.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, out.Status)

	items, _ := f.items.ListByCounting("c1")
	assert.Len(t, items, 2)
}
