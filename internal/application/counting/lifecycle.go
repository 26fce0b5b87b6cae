package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/domain"
	domcounting "github.com/contaestoque/contagem-api/internal/domain/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// LifecycleUseCase executa as transições do ciclo de vida de uma contagem a
// partir do back-office. Toda transição é uma única escrita remota
// condicional (compare-and-swap sobre o status); o estado local só é
// atualizado depois de a escrita remota ter sucesso.
type LifecycleUseCase struct {
	countingRepo repository.CountingRepository
	notifRepo    repository.NotificationRepository
}

// NewLifecycleUseCase constrói o caso de uso.
func NewLifecycleUseCase(countingRepo repository.CountingRepository, notifRepo repository.NotificationRepository) *LifecycleUseCase {
	return &LifecycleUseCase{countingRepo: countingRepo, notifRepo: notifRepo}
}

// Get devolve a contagem escopada por empresa, aplicando antes o pré-check de
// expiração (idempotente).
func (uc *LifecycleUseCase) Get(ctx context.Context, companyID, id string) (*entity.Counting, error) {
	c, err := uc.countingRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, time.Now())
	return c, nil
}

// List lista contagens da empresa, opcionalmente filtradas por status.
func (uc *LifecycleUseCase) List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Counting, error) {
	if status != "" {
		if _, err := entity.ParseCountingStatus(status); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.countingRepo.ListByCompany(companyID, status, limit, offset)
}

// Start inicia a contagem: pending → in_progress, gravando StartedAt.
func (uc *LifecycleUseCase) Start(ctx context.Context, companyID, id string) (*entity.Counting, error) {
	c, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)
	if c.Status != entity.StatusPending {
		return nil, &domain.IllegalTransitionError{Action: "start", From: string(c.Status), To: string(entity.StatusInProgress)}
	}
	st := entity.StatusInProgress
	return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusPending},
		repository.CountingUpdate{Status: &st, StartedAt: &now}, "start")
}

// Complete encerra a contagem: in_progress → completed, gravando CompletedAt.
func (uc *LifecycleUseCase) Complete(ctx context.Context, companyID, id string) (*entity.Counting, error) {
	c, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)
	if c.Status != entity.StatusInProgress {
		return nil, &domain.IllegalTransitionError{Action: "complete", From: string(c.Status), To: string(entity.StatusCompleted)}
	}
	st := entity.StatusCompleted
	return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusInProgress},
		repository.CountingUpdate{Status: &st, CompletedAt: &now}, "complete")
}

// Reopen reabre uma contagem concluída dentro da janela de 24h:
// completed → in_progress, com novo ExpiresAt = agora + 2h.
func (uc *LifecycleUseCase) Reopen(ctx context.Context, companyID, id string) (*entity.Counting, error) {
	c, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !domcounting.CanReopen(c, now) {
		return nil, &domain.IllegalTransitionError{Action: "reopen", From: string(c.Status), To: string(entity.StatusInProgress)}
	}
	st := entity.StatusInProgress
	exp := now.Add(domcounting.ReopenExtension)
	return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusCompleted},
		repository.CountingUpdate{Status: &st, ExpiresAt: &exp}, "reopen")
}

// Extend estende o prazo em h horas (h > 0). Em in_progress só empurra o
// ExpiresAt; em expired reativa a contagem reescrevendo o agendamento para
// agora + h (o agendamento vence o ExpiresAt antigo na resolução de prazo).
func (uc *LifecycleUseCase) Extend(ctx context.Context, companyID, id string, hours int) (*entity.Counting, error) {
	if hours <= 0 {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)

	switch c.Status {
	case entity.StatusInProgress:
		base := now
		if c.ExpiresAt != nil && c.ExpiresAt.After(now) {
			base = *c.ExpiresAt
		}
		exp := base.Add(time.Duration(hours) * time.Hour)
		return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusInProgress},
			repository.CountingUpdate{ExpiresAt: &exp}, "extend")
	case entity.StatusExpired:
		deadline := now.Add(time.Duration(hours) * time.Hour)
		date, hour := domcounting.ScheduleFromInstant(deadline)
		st := entity.StatusInProgress
		return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusExpired},
			repository.CountingUpdate{Status: &st, ScheduledDate: &date, ScheduledTime: &hour}, "extend")
	}
	return nil, &domain.IllegalTransitionError{Action: "extend", From: string(c.Status), To: string(entity.StatusInProgress)}
}

// ForceStop é o encerramento forçado: in_progress → expired, gravando
// CompletedAt. É deliberadamente distinto do "Complete" (caminho natural) — o
// resultado é expired, não completed.
func (uc *LifecycleUseCase) ForceStop(ctx context.Context, companyID, id string) (*entity.Counting, error) {
	c, err := uc.load(companyID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != entity.StatusInProgress {
		return nil, &domain.IllegalTransitionError{Action: "force_stop", From: string(c.Status), To: string(entity.StatusExpired)}
	}
	now := time.Now()
	st := entity.StatusExpired
	return uc.casAndReload(companyID, id, []entity.CountingStatus{entity.StatusInProgress},
		repository.CountingUpdate{Status: &st, CompletedAt: &now}, "force_stop")
}

// Delete remove a contagem (ação explícita de operador).
func (uc *LifecycleUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.countingRepo.Delete(companyID, id)
}

// load busca a contagem escopada por empresa.
func (uc *LifecycleUseCase) load(companyID, id string) (*entity.Counting, error) {
	return uc.countingRepo.GetByID(companyID, id)
}

// casAndReload aplica a escrita condicional e recarrega o registro para
// reconciliar o estado local com o remoto.
func (uc *LifecycleUseCase) casAndReload(companyID, id string, from []entity.CountingStatus, fields repository.CountingUpdate, action string) (*entity.Counting, error) {
	ok, err := uc.countingRepo.UpdateIfStatus(id, from, fields)
	if err != nil {
		return nil, fmt.Errorf("%s contagem %s: %w", action, id, err)
	}
	if !ok {
		// Outro operador (ou o sweep) mudou o status no meio do caminho.
		return nil, &domain.IllegalTransitionError{Action: action, From: "desconhecido", To: "—"}
	}
	return uc.load(companyID, id)
}

// expireIfOverdue é o pré-check idempotente de expiração: se a contagem
// estiver vencida, grava expired via compare-and-swap e só então reflete o
// novo status no objeto em memória. Seguro para execução concorrente — o
// perdedor do CAS vira no-op.
func expireIfOverdue(repo repository.CountingRepository, notifRepo repository.NotificationRepository, c *entity.Counting, now time.Time) bool {
	if !domcounting.IsOverdue(c, now) {
		return false
	}
	st := entity.StatusExpired
	ok, err := repo.UpdateIfStatus(c.ID, []entity.CountingStatus{entity.StatusPending, entity.StatusInProgress},
		repository.CountingUpdate{Status: &st})
	if err != nil || !ok {
		return false
	}
	c.Status = entity.StatusExpired
	if notifRepo != nil {
		_ = notifRepo.Create(expiredNotification(c, now))
	}
	return true
}

func expiredNotification(c *entity.Counting, now time.Time) *entity.Notification {
	return &entity.Notification{
		ID:          uuid.New().String(),
		CompanyID:   c.CompanyID,
		Type:        entity.NotificationCountingExpired,
		Title:       "Contagem expirada",
		Message:     fmt.Sprintf("A contagem %s de %s expirou sem ser concluída.", c.InternalID, c.EmployeeName),
		ReferenceID: c.ID,
		CreatedAt:   now,
	}
}
