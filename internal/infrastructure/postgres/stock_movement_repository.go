package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação do livro de movimentações sobre PostgreSQL.
// Lançamentos são imutáveis: só INSERT e SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, quantity_before, quantity_after, movement_type, reference_id, user_id, notes, created_at`

// CreateBatch grava todos os lançamentos em um único batch pgx. O batch roda
// em transação implícita: ou grava todos ou não grava nenhum.
func (r *StockMovementRepo) CreateBatch(movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query,
			m.ID, m.CompanyID, m.ProductID, m.QuantityBefore, m.QuantityAfter,
			m.MovementType, m.ReferenceID, m.UserID, m.Notes, m.CreatedAt,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range movements {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert stock movements: %w", err)
		}
	}
	return nil
}

// ListByProduct lista o histórico de movimentações de um produto.
func (r *StockMovementRepo) ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.list(query, companyID, productID, limit, offset)
}

// ListByReference lista os lançamentos originados por uma contagem.
func (r *StockMovementRepo) ListByReference(companyID, referenceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE company_id = $1 AND reference_id = $2
		ORDER BY created_at`
	return r.list(query, companyID, referenceID)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.QuantityBefore, &m.QuantityAfter,
			&m.MovementType, &m.ReferenceID, &m.UserID, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
