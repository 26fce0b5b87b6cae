package counting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// PublicUseCase atende o link público de contagem usado pelo colaborador de
// campo no celular: buscar a contagem pelo token, iniciar, enviar quantidades
// e encerrar. Itens só são editáveis enquanto a contagem está in_progress.
type PublicUseCase struct {
	countingRepo repository.CountingRepository
	itemRepo     repository.CountedItemRepository
	productRepo  repository.ProductRepository
	notifRepo    repository.NotificationRepository
}

// NewPublicUseCase constrói o caso de uso.
func NewPublicUseCase(
	countingRepo repository.CountingRepository,
	itemRepo repository.CountedItemRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) *PublicUseCase {
	return &PublicUseCase{countingRepo: countingRepo, itemRepo: itemRepo, productRepo: productRepo, notifRepo: notifRepo}
}

// CountingSheet é a folha de contagem exibida no celular: a contagem, os
// produtos dos setores cobertos e o que já foi contado.
type CountingSheet struct {
	Counting *entity.Counting
	Products []*entity.Product
	Items    []*entity.CountedItem
}

// GetByToken carrega a folha de contagem do link público, aplicando antes o
// pré-check de expiração.
func (uc *PublicUseCase) GetByToken(ctx context.Context, token string) (*CountingSheet, error) {
	c, err := uc.loadByToken(token)
	if err != nil {
		return nil, err
	}
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, time.Now())

	var products []*entity.Product
	for _, sectorID := range c.SectorIDs {
		ps, err := uc.productRepo.ListBySector(c.CompanyID, sectorID)
		if err != nil {
			return nil, err
		}
		products = append(products, ps...)
	}
	items, err := uc.itemRepo.ListByCounting(c.ID)
	if err != nil {
		return nil, err
	}
	return &CountingSheet{Counting: c, Products: products, Items: items}, nil
}

// StartByToken inicia a contagem pelo link público (pending → in_progress).
func (uc *PublicUseCase) StartByToken(ctx context.Context, token string) (*entity.Counting, error) {
	c, err := uc.loadByToken(token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)
	if c.Status != entity.StatusPending {
		return nil, &domain.IllegalTransitionError{Action: "start", From: string(c.Status), To: string(entity.StatusInProgress)}
	}
	st := entity.StatusInProgress
	ok, err := uc.countingRepo.UpdateIfStatus(c.ID, []entity.CountingStatus{entity.StatusPending},
		repository.CountingUpdate{Status: &st, StartedAt: &now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.IllegalTransitionError{Action: "start", From: string(c.Status), To: string(entity.StatusInProgress)}
	}
	return uc.loadByToken(token)
}

// SubmitItem grava (upsert) a quantidade contada de um produto. Permitido
// apenas com a contagem in_progress; quantidade negativa é inválida.
func (uc *PublicUseCase) SubmitItem(ctx context.Context, token string, in dto.SubmitItemRequest) (*entity.CountedItem, error) {
	if in.ProductID == "" || in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.loadByToken(token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)
	if c.Status != entity.StatusInProgress {
		return nil, domain.ErrConflict // contagem não está aberta para edição
	}
	if _, err := uc.productRepo.GetByID(c.CompanyID, in.ProductID); err != nil {
		return nil, err
	}
	countedBy := in.CountedBy
	if countedBy == "" {
		countedBy = c.EmployeeName
	}
	item := &entity.CountedItem{
		ID:              uuid.New().String(),
		CountingID:      c.ID,
		ProductID:       in.ProductID,
		CountedQuantity: in.Quantity,
		Notes:           in.Notes,
		CountedBy:       countedBy,
		CountedAt:       now,
	}
	if err := uc.itemRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// FinishByToken encerra a contagem pelo link público (in_progress →
// completed) e registra a notificação para o back-office.
func (uc *PublicUseCase) FinishByToken(ctx context.Context, token string) (*entity.Counting, error) {
	c, err := uc.loadByToken(token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now)
	if c.Status != entity.StatusInProgress {
		return nil, &domain.IllegalTransitionError{Action: "complete", From: string(c.Status), To: string(entity.StatusCompleted)}
	}
	st := entity.StatusCompleted
	ok, err := uc.countingRepo.UpdateIfStatus(c.ID, []entity.CountingStatus{entity.StatusInProgress},
		repository.CountingUpdate{Status: &st, CompletedAt: &now})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.IllegalTransitionError{Action: "complete", From: string(c.Status), To: string(entity.StatusCompleted)}
	}
	if uc.notifRepo != nil {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:          uuid.New().String(),
			CompanyID:   c.CompanyID,
			Type:        entity.NotificationCountingFinished,
			Title:       "Contagem concluída",
			Message:     "A contagem " + c.InternalID + " foi concluída por " + c.EmployeeName + " e aguarda aprovação.",
			ReferenceID: c.ID,
			CreatedAt:   now,
		})
	}
	return uc.loadByToken(token)
}

func (uc *PublicUseCase) loadByToken(token string) (*entity.Counting, error) {
	if token == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.countingRepo.GetByShareToken(token)
}
