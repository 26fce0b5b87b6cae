package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// ApproveUseCase executa a aprovação de uma contagem concluída e a
// reconciliação de estoque: para cada item contado compara a quantidade com o
// estoque atual do produto, grava um lançamento no livro para cada diferença
// não nula e confirma o novo nível de estoque.
//
// Ordem das escritas (consistência fraca aceita e sinalizada):
//  1. lote único de lançamentos (tudo ou nada; falha aborta a aprovação);
//  2. uma atualização de estoque por produto — falhas individuais produzem
//     PartialReconciliationError e NÃO revertem os produtos já atualizados;
//  3. só então o status vai a approved, por compare-and-swap sobre completed,
//     o que torna a segunda aprovação concorrente um erro e impede
//     lançamentos duplicados.
type ApproveUseCase struct {
	countingRepo repository.CountingRepository
	itemRepo     repository.CountedItemRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	notifRepo    repository.NotificationRepository
}

// NewApproveUseCase constrói o caso de uso.
func NewApproveUseCase(
	countingRepo repository.CountingRepository,
	itemRepo repository.CountedItemRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	notifRepo repository.NotificationRepository,
) *ApproveUseCase {
	return &ApproveUseCase{
		countingRepo: countingRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		notifRepo:    notifRepo,
	}
}

// Approve aprova a contagem e devolve o resumo (quantidade de lançamentos).
// Só completed é origem legal; aprovar de novo uma contagem já approved é
// rejeitado antes de qualquer escrita.
func (uc *ApproveUseCase) Approve(ctx context.Context, companyID, countingID, approverID string) (*ApprovalSummary, error) {
	c, err := uc.countingRepo.GetByID(companyID, countingID)
	if err != nil {
		return nil, err
	}
	if c.Status != entity.StatusCompleted {
		return nil, &domain.IllegalTransitionError{Action: "approve", From: string(c.Status), To: string(entity.StatusApproved)}
	}

	items, err := uc.itemRepo.ListByCounting(countingID)
	if err != nil {
		return nil, err
	}

	// Lote de produtos referenciados (uma consulta, nunca N+1).
	productByID := map[string]*entity.Product{}
	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		seen := map[string]bool{}
		for _, it := range items {
			if !seen[it.ProductID] {
				seen[it.ProductID] = true
				ids = append(ids, it.ProductID)
			}
		}
		products, err := uc.productRepo.ListByIDs(companyID, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productByID[p.ID] = p
		}
	}

	now := time.Now()
	var movements []*entity.StockMovement
	var updates []*entity.CountedItem
	for _, it := range items {
		p, ok := productByID[it.ProductID]
		if !ok {
			// Produto removido depois do início da contagem: tolerado, pulado.
			continue
		}
		if it.CountedQuantity.Equal(p.CurrentStock) {
			continue // diferença zero: sem lançamento, sem atualização
		}
		movements = append(movements, &entity.StockMovement{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			ProductID:      it.ProductID,
			QuantityBefore: p.CurrentStock,
			QuantityAfter:  it.CountedQuantity,
			MovementType:   entity.MovementTypeCountingApproved,
			ReferenceID:    countingID,
			UserID:         approverID,
			Notes:          it.Notes,
			CreatedAt:      now,
		})
		updates = append(updates, it)
	}

	if len(movements) > 0 {
		if err := uc.movementRepo.CreateBatch(movements); err != nil {
			// Nada foi aplicado: aprovação abortada por inteiro.
			return nil, fmt.Errorf("gravar lançamentos da contagem %s: %w", countingID, err)
		}
	}

	var applied, failed []string
	var firstErr error
	for _, it := range updates {
		if err := uc.productRepo.UpdateStock(it.ProductID, it.CountedQuantity); err != nil {
			failed = append(failed, it.ProductID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, it.ProductID)
	}
	if len(failed) > 0 {
		return nil, &domain.PartialReconciliationError{
			MovementsCreated: len(movements),
			UpdatedProducts:  applied,
			FailedProducts:   failed,
			Err:              firstErr,
		}
	}

	st := entity.StatusApproved
	ok, err := uc.countingRepo.UpdateIfStatus(countingID, []entity.CountingStatus{entity.StatusCompleted},
		repository.CountingUpdate{Status: &st, ApprovedAt: &now})
	if err != nil {
		return nil, fmt.Errorf("aprovar contagem %s: %w", countingID, err)
	}
	if !ok {
		// Aprovação concorrente venceu a corrida; esta perde.
		return nil, &domain.IllegalTransitionError{Action: "approve", From: string(entity.StatusApproved), To: string(entity.StatusApproved)}
	}

	if uc.notifRepo != nil {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			Type:        entity.NotificationCountingApproved,
			Title:       "Contagem aprovada",
			Message:     fmt.Sprintf("Contagem %s aprovada: %d movimentação(ões) de estoque.", c.InternalID, len(movements)),
			ReferenceID: countingID,
			CreatedAt:   now,
		})
	}
	return &ApprovalSummary{MovementsCreated: len(movements)}, nil
}

// ApprovalSummary resumo devolvido ao operador.
type ApprovalSummary struct {
	MovementsCreated int
}
