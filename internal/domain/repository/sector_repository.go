package repository

import "github.com/contaestoque/contagem-api/internal/domain/entity"

// SectorRepository define o porto de persistência de setores (DIP).
type SectorRepository interface {
	Create(sector *entity.Sector) error
	GetByID(companyID, id string) (*entity.Sector, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error)
	ListByIDs(companyID string, ids []string) ([]*entity.Sector, error)
	Update(sector *entity.Sector) error
	Delete(companyID, id string) error
}
