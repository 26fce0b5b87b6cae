package repository

import "github.com/contaestoque/contagem-api/internal/domain/entity"

// StockMovementRepository define o porto do livro de movimentações.
// Lançamentos são imutáveis: não há Update nem Delete.
type StockMovementRepository interface {
	// CreateBatch grava todos os lançamentos em uma única escrita multi-linha;
	// ou grava todos ou não grava nenhum.
	CreateBatch(movements []*entity.StockMovement) error
	ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(companyID, referenceID string) ([]*entity.StockMovement, error)
}
