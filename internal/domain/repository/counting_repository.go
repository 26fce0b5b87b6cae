package repository

import (
	"time"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// CountingUpdate é uma atualização parcial de contagem: campos nil não são
// tocados. Status, timestamps e campos de agendamento variam de forma
// independente conforme a transição.
type CountingUpdate struct {
	Status        *entity.CountingStatus
	StartedAt     *time.Time
	CompletedAt   *time.Time
	ApprovedAt    *time.Time
	ScheduledDate *string
	ScheduledTime *string
	ExpiresAt     *time.Time
}

// CountingRepository define o porto de persistência de contagens (DIP).
// GetByID sempre escopado por empresa; SectorIDs carregados da tabela
// counting_sectors (relação 1:N, nunca campo codificado). Buscas por registro
// único devolvem ErrNotFound quando a contagem não existe.
type CountingRepository interface {
	Create(counting *entity.Counting) error
	AddSectors(countingID string, sectorIDs []string) error
	GetByID(companyID, id string) (*entity.Counting, error)
	GetByShareToken(token string) (*entity.Counting, error)
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Counting, error)
	// ListActive devolve contagens pending/in_progress com algum prazo
	// definido, de todas as empresas (varredura de expiração).
	ListActive(limit int) ([]*entity.Counting, error)
	Update(id string, fields CountingUpdate) error
	// UpdateIfStatus aplica fields somente se o status atual estiver em from
	// (compare-and-swap). Devolve false quando nenhuma linha foi afetada.
	UpdateIfStatus(id string, from []entity.CountingStatus, fields CountingUpdate) (bool, error)
	// NextInternalSeq devolve o próximo sequencial interno da empresa.
	// Deve ser chamado dentro da transação de criação.
	NextInternalSeq(companyID string) (int, error)
	Delete(companyID, id string) error
}
