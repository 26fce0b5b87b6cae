package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
	pkgtext "github.com/contaestoque/contagem-api/pkg/text"
)

// ProductUseCase CRUD de produtos. A busca por nome é normalizada sem
// acentos ("feijao" encontra "Feijão").
type ProductUseCase struct {
	productRepo repository.ProductRepository
	sectorRepo  repository.SectorRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, sectorRepo repository.SectorRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, sectorRepo: sectorRepo}
}

// Create cadastra um produto no setor informado.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.SectorID == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.sectorRepo.GetByID(companyID, in.SectorID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SectorID:     in.SectorID,
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID busca um produto escopado por empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(companyID, id)
}

// List lista produtos, com busca por nome sem acentos.
func (uc *ProductUseCase) List(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByCompany(companyID, pkgtext.Normalize(search), limit, offset)
}

// Update atualiza os dados cadastrais; CurrentStock só muda por movimentação.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	p, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.SectorID != "" && in.SectorID != p.SectorID {
		if _, err := uc.sectorRepo.GetByID(companyID, in.SectorID); err != nil {
			return nil, err
		}
		p.SectorID = in.SectorID
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Unit != "" {
		p.Unit = in.Unit
	}
	p.MinStock = in.MinStock
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete remove um produto.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	return uc.productRepo.Delete(companyID, id)
}
