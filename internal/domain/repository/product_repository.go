package repository

import (
	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência de produtos (DIP).
// GetByID devolve ErrNotFound quando o produto não existe na empresa.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(companyID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ListByCompany filtra por nome normalizado (busca sem acentos) quando
	// search não é vazio.
	ListByCompany(companyID, search string, limit, offset int) ([]*entity.Product, error)
	ListBySector(companyID, sectorID string) ([]*entity.Product, error)
	// ListByIDs carrega em lote os produtos referenciados pela reconciliação
	// (uma única consulta, nunca N+1).
	ListByIDs(companyID string, ids []string) ([]*entity.Product, error)
	UpdateStock(productID string, stock decimal.Decimal) error
	Delete(companyID, id string) error
}
