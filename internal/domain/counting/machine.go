// Package counting implementa a máquina de estados do ciclo de vida de uma
// contagem: grafo de transições, resolução de prazo, janela de reabertura e
// estado derivado de exibição. Todas as funções são puras; efeitos de
// persistência ficam nos casos de uso da camada de aplicação.
package counting

import (
	"fmt"
	"time"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// Janelas e padrões do ciclo de vida.
const (
	ReopenWindow       = 24 * time.Hour // completed → in_progress só dentro desta janela
	ReopenExtension    = 2 * time.Hour  // novo expiresAt ao reabrir
	DefaultExpiry      = 24 * time.Hour // prazo alternativo quando não há agendamento
	DefaultExtendHours = 2              // horas padrão do "estender prazo"
)

// Layouts de ScheduledDate e ScheduledTime.
const (
	ScheduleDateLayout = "2006-01-02"
	ScheduleTimeLayout = "15:04"
)

// Grafo de transições permitidas. Extensão de prazo em in_progress não muda
// status e não passa por aqui; approved é terminal.
var allowed = map[entity.CountingStatus][]entity.CountingStatus{
	entity.StatusPending:    {entity.StatusInProgress, entity.StatusExpired},
	entity.StatusInProgress: {entity.StatusCompleted, entity.StatusExpired},
	entity.StatusCompleted:  {entity.StatusApproved, entity.StatusInProgress},
	entity.StatusExpired:    {entity.StatusInProgress},
	entity.StatusApproved:   {},
}

// CanTransition informa se (from, to) pertence ao grafo de transições.
func CanTransition(from, to entity.CountingStatus) bool {
	for _, t := range allowed[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Deadline resolve o prazo efetivo da contagem, na ordem:
// ScheduledDate+ScheduledTime → ExpiresAt → sem prazo (ok=false, nunca expira
// automaticamente). O agendamento vence mesmo que ExpiresAt aponte para antes.
func Deadline(c *entity.Counting) (time.Time, bool) {
	if c.ScheduledDate != nil && c.ScheduledTime != nil {
		if t, err := ParseSchedule(*c.ScheduledDate, *c.ScheduledTime); err == nil {
			return t, true
		}
	}
	if c.ExpiresAt != nil {
		return *c.ExpiresAt, true
	}
	return time.Time{}, false
}

// ParseSchedule combina data ("2006-01-02") e hora ("15:04") no fuso local.
func ParseSchedule(date, hour string) (time.Time, error) {
	t, err := time.ParseInLocation(ScheduleDateLayout+" "+ScheduleTimeLayout, date+" "+hour, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("agendamento inválido %q %q: %w", date, hour, err)
	}
	return t, nil
}

// ScheduleFromInstant decompõe um instante nos campos ScheduledDate e
// ScheduledTime (usado ao reativar uma contagem expirada com novo prazo).
func ScheduleFromInstant(t time.Time) (date, hour string) {
	return t.Format(ScheduleDateLayout), t.Format(ScheduleTimeLayout)
}

// IsOverdue informa se a contagem está vencida: status ainda ativo
// (pending/in_progress) e prazo efetivo no passado.
func IsOverdue(c *entity.Counting, now time.Time) bool {
	if c.Status != entity.StatusPending && c.Status != entity.StatusInProgress {
		return false
	}
	deadline, ok := Deadline(c)
	return ok && now.After(deadline)
}

// CanReopen informa se a contagem pode voltar de completed para in_progress:
// só dentro de ReopenWindow após CompletedAt.
func CanReopen(c *entity.Counting, now time.Time) bool {
	if c.Status != entity.StatusCompleted || c.CompletedAt == nil {
		return false
	}
	return now.Sub(*c.CompletedAt) <= ReopenWindow
}

// DefaultExpiresAt calcula o ExpiresAt inicial de uma contagem: 24h depois da
// criação, ou 24h depois do prazo agendado quando existe agendamento.
func DefaultExpiresAt(createdAt time.Time, scheduled *time.Time) time.Time {
	if scheduled != nil {
		return scheduled.Add(DefaultExpiry)
	}
	return createdAt.Add(DefaultExpiry)
}
