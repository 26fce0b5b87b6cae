package repository

import "github.com/contaestoque/contagem-api/internal/domain/entity"

// CountedItemRepository define o porto de persistência de itens contados.
// Upsert garante no máximo um registro por (countingID, productID); a última
// gravação vence.
type CountedItemRepository interface {
	Upsert(item *entity.CountedItem) error
	ListByCounting(countingID string) ([]*entity.CountedItem, error)
}
