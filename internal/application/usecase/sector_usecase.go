package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// SectorUseCase CRUD de setores de armazenamento.
type SectorUseCase struct {
	sectorRepo repository.SectorRepository
}

// NewSectorUseCase constrói o caso de uso.
func NewSectorUseCase(sectorRepo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{sectorRepo: sectorRepo}
}

// Create cadastra um setor.
func (uc *SectorUseCase) Create(companyID string, in dto.SectorRequest) (*entity.Sector, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Sector{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.sectorRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID busca um setor escopado por empresa.
func (uc *SectorUseCase) GetByID(companyID, id string) (*entity.Sector, error) {
	return uc.sectorRepo.GetByID(companyID, id)
}

// List lista setores da empresa.
func (uc *SectorUseCase) List(companyID string, limit, offset int) ([]*entity.Sector, error) {
	return uc.sectorRepo.ListByCompany(companyID, limit, offset)
}

// Update atualiza nome/descrição.
func (uc *SectorUseCase) Update(companyID, id string, in dto.SectorRequest) (*entity.Sector, error) {
	s, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		s.Name = in.Name
	}
	s.Description = in.Description
	s.UpdatedAt = time.Now()
	if err := uc.sectorRepo.Update(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete remove um setor.
func (uc *SectorUseCase) Delete(companyID, id string) error {
	return uc.sectorRepo.Delete(companyID, id)
}
