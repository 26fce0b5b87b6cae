package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// SubscriptionUseCase vincula empresas a planos do SaaS.
type SubscriptionUseCase struct {
	planRepo repository.PlanRepository
	subRepo  repository.SubscriptionRepository
}

// NewSubscriptionUseCase constrói o caso de uso.
func NewSubscriptionUseCase(planRepo repository.PlanRepository, subRepo repository.SubscriptionRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{planRepo: planRepo, subRepo: subRepo}
}

// ListPlans lista os planos disponíveis.
func (uc *SubscriptionUseCase) ListPlans() ([]*entity.Plan, error) {
	return uc.planRepo.List()
}

// Subscribe assina a empresa no plano. Uma assinatura ativa por empresa.
func (uc *SubscriptionUseCase) Subscribe(companyID, planID string) (*entity.Subscription, error) {
	if _, err := uc.planRepo.GetByID(planID); err != nil {
		return nil, err
	}
	// Sem assinatura ativa é o caminho esperado para assinar.
	switch _, err := uc.subRepo.GetActiveByCompany(companyID); {
	case err == nil:
		return nil, domain.ErrConflict // já existe assinatura ativa
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PlanID:    planID,
		Status:    entity.SubscriptionActive,
		StartedAt: time.Now(),
	}
	if err := uc.subRepo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel encerra a assinatura ativa da empresa.
func (uc *SubscriptionUseCase) Cancel(companyID string) error {
	sub, err := uc.subRepo.GetActiveByCompany(companyID)
	if err != nil {
		return err
	}
	return uc.subRepo.Cancel(sub.ID, time.Now())
}
