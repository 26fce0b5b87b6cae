package counting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	counting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Varredura de expiração (ticker em segundo plano)
// ──────────────────────────────────────────────────────────────────────────────

func TestSweep_ExpiraSomenteVencidas(t *testing.T) {
	repo := newMemCountingRepo()
	notif := &memNotifRepo{}
	uc := counting.NewSweepUseCase(repo, notif)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	seedCounting(repo, "vencida-pendente", entity.StatusPending, func(c *entity.Counting) {
		c.ExpiresAt = &past
	})
	seedCounting(repo, "vencida-andamento", entity.StatusInProgress, func(c *entity.Counting) {
		c.ExpiresAt = &past
	})
	seedCounting(repo, "no-prazo", entity.StatusInProgress, func(c *entity.Counting) {
		c.ExpiresAt = &future
	})
	seedCounting(repo, "sem-prazo", entity.StatusPending, func(c *entity.Counting) {
		c.ExpiresAt = nil
	})
	seedCounting(repo, "concluida", entity.StatusCompleted, func(c *entity.Counting) {
		c.ExpiresAt = &past
	})

	n, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for id, want := range map[string]entity.CountingStatus{
		"vencida-pendente":  entity.StatusExpired,
		"vencida-andamento": entity.StatusExpired,
		"no-prazo":          entity.StatusInProgress,
		"sem-prazo":         entity.StatusPending,
		"concluida":         entity.StatusCompleted,
	} {
		c, err := repo.GetByID(companyA, id)
		require.NoError(t, err)
		assert.Equal(t, want, c.Status, id)
	}
	expired := notif.ofType(entity.NotificationCountingExpired)
	assert.Len(t, expired, 2)
	for _, n := range expired {
		assert.NotEmpty(t, n.ID)
	}
}

func TestSweep_Idempotente(t *testing.T) {
	repo := newMemCountingRepo()
	notif := &memNotifRepo{}
	uc := counting.NewSweepUseCase(repo, notif)

	past := time.Now().Add(-time.Minute)
	seedCounting(repo, "c1", entity.StatusInProgress, func(c *entity.Counting) {
		c.ExpiresAt = &past
	})

	n, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Segunda varredura: nenhuma escrita efetiva, nenhuma notificação nova.
	n, err = uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, notif.ofType(entity.NotificationCountingExpired), 1)
}

func TestSweep_AgendamentoVenceExpiresAt(t *testing.T) {
	repo := newMemCountingRepo()
	uc := counting.NewSweepUseCase(repo, &memNotifRepo{})

	// ExpiresAt vencido, mas agendamento futuro: o agendamento tem precedência
	// e a contagem segue no prazo.
	past := time.Now().Add(-time.Hour)
	sched := time.Now().Add(6 * time.Hour)
	seedCounting(repo, "c1", entity.StatusInProgress, func(c *entity.Counting) {
		c.ExpiresAt = &past
		c.ScheduledDate = ptr(sched.Format("2006-01-02"))
		c.ScheduledTime = ptr(sched.Format("15:04"))
	})

	n, err := uc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	c, _ := repo.GetByID(companyA, "c1")
	assert.Equal(t, entity.StatusInProgress, c.Status)
}
