package postgres

import (
	"context"
	"fmt"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

var _ repository.CountedItemRepository = (*CountedItemRepo)(nil)

// CountedItemRepo implementação de CountedItemRepository sobre PostgreSQL.
type CountedItemRepo struct {
	q Querier
}

// NewCountedItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCountedItemRepository(q Querier) *CountedItemRepo {
	return &CountedItemRepo{q: q}
}

// Upsert insere ou atualiza a quantidade contada; a constraint única em
// (counting_id, product_id) garante no máximo um registro por par e a última
// gravação vence.
func (r *CountedItemRepo) Upsert(item *entity.CountedItem) error {
	query := `
		INSERT INTO counted_items (id, counting_id, product_id, counted_quantity, notes, counted_by, counted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (counting_id, product_id)
		DO UPDATE SET counted_quantity = EXCLUDED.counted_quantity,
		              notes = EXCLUDED.notes,
		              counted_by = EXCLUDED.counted_by,
		              counted_at = EXCLUDED.counted_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CountingID, item.ProductID, item.CountedQuantity, item.Notes, item.CountedBy, item.CountedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert counted item: %w", err)
	}
	return nil
}

// ListByCounting lista todos os itens contados de uma contagem (leitura em
// lote da reconciliação).
func (r *CountedItemRepo) ListByCounting(countingID string) ([]*entity.CountedItem, error) {
	query := `
		SELECT id, counting_id, product_id, counted_quantity, notes, counted_by, counted_at
		FROM counted_items WHERE counting_id = $1 ORDER BY counted_at`
	rows, err := r.q.Query(context.Background(), query, countingID)
	if err != nil {
		return nil, fmt.Errorf("list counted items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CountedItem
	for rows.Next() {
		var it entity.CountedItem
		if err := rows.Scan(&it.ID, &it.CountingID, &it.ProductID, &it.CountedQuantity, &it.Notes, &it.CountedBy, &it.CountedAt); err != nil {
			return nil, fmt.Errorf("scan counted item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
