package counting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaestoque/contagem-api/internal/domain/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Grafo de transições
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_GrafoCompleto(t *testing.T) {
	all := []entity.CountingStatus{
		entity.StatusPending, entity.StatusInProgress, entity.StatusCompleted,
		entity.StatusApproved, entity.StatusExpired,
	}
	legal := map[[2]entity.CountingStatus]bool{
		{entity.StatusPending, entity.StatusInProgress}:    true,
		{entity.StatusPending, entity.StatusExpired}:       true,
		{entity.StatusInProgress, entity.StatusCompleted}:  true,
		{entity.StatusInProgress, entity.StatusExpired}:    true,
		{entity.StatusCompleted, entity.StatusApproved}:    true,
		{entity.StatusCompleted, entity.StatusInProgress}:  true, // reabertura
		{entity.StatusExpired, entity.StatusInProgress}:    true, // reativação por extensão
	}

	for _, from := range all {
		for _, to := range all {
			got := counting.CanTransition(from, to)
			want := legal[[2]entity.CountingStatus{from, to}]
			assert.Equal(t, want, got, "transição %s → %s", from, to)
		}
	}
}

func TestCanTransition_ApprovedEhTerminal(t *testing.T) {
	for _, to := range []entity.CountingStatus{
		entity.StatusPending, entity.StatusInProgress, entity.StatusCompleted, entity.StatusExpired,
	} {
		assert.False(t, counting.CanTransition(entity.StatusApproved, to),
			"approved é terminal; não deve transicionar para %s", to)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolução de prazo
// ──────────────────────────────────────────────────────────────────────────────

func TestDeadline_AgendamentoVenceExpiresAt(t *testing.T) {
	// ExpiresAt aponta para antes do agendamento: o agendamento vence mesmo assim.
	expires := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	c := &entity.Counting{
		Status:        entity.StatusPending,
		ScheduledDate: ptr("2026-03-10"),
		ScheduledTime: ptr("14:30"),
		ExpiresAt:     &expires,
	}

	deadline, ok := counting.Deadline(c)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local), deadline)
}

func TestDeadline_SemAgendamentoUsaExpiresAt(t *testing.T) {
	expires := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	c := &entity.Counting{Status: entity.StatusPending, ExpiresAt: &expires}

	deadline, ok := counting.Deadline(c)
	require.True(t, ok)
	assert.Equal(t, expires, deadline)
}

func TestDeadline_SemPrazo(t *testing.T) {
	c := &entity.Counting{Status: entity.StatusPending}
	_, ok := counting.Deadline(c)
	assert.False(t, ok, "sem agendamento e sem ExpiresAt não há prazo")
}

func TestDeadline_AgendamentoParcialNaoConta(t *testing.T) {
	// Só data sem hora: o agendamento é ignorado e vale o ExpiresAt.
	expires := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	c := &entity.Counting{
		Status:        entity.StatusPending,
		ScheduledDate: ptr("2026-03-10"),
		ExpiresAt:     &expires,
	}

	deadline, ok := counting.Deadline(c)
	require.True(t, ok)
	assert.Equal(t, expires, deadline)
}

func TestParseSchedule_Invalido(t *testing.T) {
	_, err := counting.ParseSchedule("2026-13-40", "25:99")
	assert.Error(t, err)
}

func TestScheduleFromInstant_RoundTrip(t *testing.T) {
	instant := time.Date(2026, 7, 15, 9, 45, 0, 0, time.Local)
	date, hour := counting.ScheduleFromInstant(instant)
	assert.Equal(t, "2026-07-15", date)
	assert.Equal(t, "09:45", hour)

	parsed, err := counting.ParseSchedule(date, hour)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(instant))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vencimento e reabertura
// ──────────────────────────────────────────────────────────────────────────────

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		c    *entity.Counting
		want bool
	}{
		{"pending com prazo vencido", &entity.Counting{Status: entity.StatusPending, ExpiresAt: &past}, true},
		{"in_progress com prazo vencido", &entity.Counting{Status: entity.StatusInProgress, ExpiresAt: &past}, true},
		{"pending dentro do prazo", &entity.Counting{Status: entity.StatusPending, ExpiresAt: &future}, false},
		{"pending sem prazo nunca vence", &entity.Counting{Status: entity.StatusPending}, false},
		{"completed não vence", &entity.Counting{Status: entity.StatusCompleted, ExpiresAt: &past}, false},
		{"approved não vence", &entity.Counting{Status: entity.StatusApproved, ExpiresAt: &past}, false},
		{"expired não vence de novo", &entity.Counting{Status: entity.StatusExpired, ExpiresAt: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, counting.IsOverdue(tt.c, now))
		})
	}
}

func TestCanReopen_DentroDaJanela(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	completed := now.Add(-23*time.Hour - 59*time.Minute)
	c := &entity.Counting{Status: entity.StatusCompleted, CompletedAt: &completed}

	assert.True(t, counting.CanReopen(c, now), "23h59 depois de concluída ainda reabre")
}

func TestCanReopen_ForaDaJanela(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	completed := now.Add(-24*time.Hour - time.Minute)
	c := &entity.Counting{Status: entity.StatusCompleted, CompletedAt: &completed}

	assert.False(t, counting.CanReopen(c, now), "24h01 depois de concluída não reabre mais")
}

func TestCanReopen_NoLimiteExato(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	completed := now.Add(-counting.ReopenWindow)
	c := &entity.Counting{Status: entity.StatusCompleted, CompletedAt: &completed}

	assert.True(t, counting.CanReopen(c, now), "exatamente 24h ainda é dentro da janela")
}

func TestCanReopen_SomenteCompleted(t *testing.T) {
	now := time.Now()
	recent := now.Add(-time.Hour)
	for _, st := range []entity.CountingStatus{
		entity.StatusPending, entity.StatusInProgress, entity.StatusApproved, entity.StatusExpired,
	} {
		c := &entity.Counting{Status: st, CompletedAt: &recent}
		assert.False(t, counting.CanReopen(c, now), "status %s não reabre", st)
	}
}

func TestDefaultExpiresAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	// Sem agendamento: 24h depois da criação.
	assert.Equal(t, created.Add(24*time.Hour), counting.DefaultExpiresAt(created, nil))

	// Com agendamento: 24h depois do prazo agendado.
	scheduled := time.Date(2026, 3, 5, 14, 0, 0, 0, time.Local)
	assert.Equal(t, scheduled.Add(24*time.Hour), counting.DefaultExpiresAt(created, &scheduled))
}
