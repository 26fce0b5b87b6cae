package usecase

import (
	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// MovementUseCase consulta o livro de movimentações (somente leitura: os
// lançamentos nascem na aprovação de contagens).
type MovementUseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
}

func NewMovementUseCase(movementRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// ListByProduct histórico de movimentações de um produto.
func (uc *MovementUseCase) ListByProduct(companyID, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	// valida que o produto pertence à empresa antes de expor o histórico
	if _, err := uc.productRepo.GetByID(companyID, productID); err != nil {
		return nil, err
	}
	list, err := uc.movementRepo.ListByProduct(companyID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByCounting lançamentos gerados pela aprovação de uma contagem.
func (uc *MovementUseCase) ListByCounting(companyID, countingID string) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.ListByReference(companyID, countingID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			MovementType:   m.MovementType,
			ReferenceID:    m.ReferenceID,
			UserID:         m.UserID,
			Notes:          m.Notes,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out
}
