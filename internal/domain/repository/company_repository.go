package repository

import "github.com/contaestoque/contagem-api/internal/domain/entity"

// CompanyRepository define o porto de persistência de empresas (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
}
