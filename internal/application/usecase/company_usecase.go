package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// CompanyUseCase CRUD de empresas (tenants).
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create cadastra uma empresa.
func (uc *CompanyUseCase) Create(name, cnpj, address, phone, email string) (*entity.Company, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CNPJ:      cnpj,
		Address:   address,
		Phone:     phone,
		Email:     email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID busca uma empresa.
func (uc *CompanyUseCase) GetByID(id string) (*entity.Company, error) {
	return uc.companyRepo.GetByID(id)
}

// List lista empresas.
func (uc *CompanyUseCase) List(limit, offset int) ([]*entity.Company, error) {
	return uc.companyRepo.List(limit, offset)
}
