package counting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	domcounting "github.com/contaestoque/contagem-api/internal/domain/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// DispatchUseCase cria uma contagem e prepara seu despacho: sequencial
// interno por empresa (transacional), token do link público, URL de WhatsApp
// e, opcionalmente, e-mail com o link.
type DispatchUseCase struct {
	txRunner   TxRunner
	sectorRepo repository.SectorRepository
	links      LinkBuilder
	mailer     DispatchMailer // pode ser nil
}

// NewDispatchUseCase constrói o caso de uso.
func NewDispatchUseCase(txRunner TxRunner, sectorRepo repository.SectorRepository, links LinkBuilder, mailer DispatchMailer) *DispatchUseCase {
	return &DispatchUseCase{txRunner: txRunner, sectorRepo: sectorRepo, links: links, mailer: mailer}
}

// FormatInternalID formata o sequencial por empresa com três dígitos.
func FormatInternalID(seq int) string {
	return fmt.Sprintf("%03d", seq)
}

// Dispatch valida a entrada, grava a contagem (pending) dentro de uma
// transação e devolve os links de envio.
func (uc *DispatchUseCase) Dispatch(ctx context.Context, companyID, userID string, in dto.CreateCountingRequest) (*dto.DispatchResponse, error) {
	if len(in.SectorIDs) == 0 || in.EmployeeName == "" {
		return nil, domain.ErrInvalidInput
	}
	// Agendamento anda em par: data sem hora (ou vice-versa) é inválido.
	if (in.ScheduledDate == nil) != (in.ScheduledTime == nil) {
		return nil, domain.ErrInvalidInput
	}
	var scheduled *time.Time
	if in.ScheduledDate != nil {
		t, err := domcounting.ParseSchedule(*in.ScheduledDate, *in.ScheduledTime)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		scheduled = &t
	}

	sectors, err := uc.sectorRepo.ListByIDs(companyID, in.SectorIDs)
	if err != nil {
		return nil, err
	}
	if len(sectors) != len(in.SectorIDs) {
		return nil, domain.ErrNotFound // algum setor não existe ou é de outra empresa
	}

	now := time.Now()
	expiresAt := domcounting.DefaultExpiresAt(now, scheduled)
	c := &entity.Counting{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Status:         entity.StatusPending,
		SectorIDs:      in.SectorIDs,
		ScheduledDate:  in.ScheduledDate,
		ScheduledTime:  in.ScheduledTime,
		ExpiresAt:      &expiresAt,
		EmployeeName:   in.EmployeeName,
		WhatsAppNumber: in.WhatsAppNumber,
		ShareToken:     uuid.New().String(),
		CreatedBy:      userID,
		CreatedAt:      now,
	}

	// Sequencial + contagem + setores na mesma transação.
	err = uc.txRunner.Run(ctx, func(countingRepo repository.CountingRepository) error {
		seq, err := countingRepo.NextInternalSeq(companyID)
		if err != nil {
			return err
		}
		c.InternalID = FormatInternalID(seq)
		if err := countingRepo.Create(c); err != nil {
			return err
		}
		return countingRepo.AddSectors(c.ID, in.SectorIDs)
	})
	if err != nil {
		return nil, err
	}

	shareURL := uc.links.ShareURL(c.ShareToken)
	resp := &dto.DispatchResponse{
		Counting:    dto.ToCountingResponse(c, now),
		ShareURL:    shareURL,
		WhatsAppURL: uc.links.WhatsAppURL(c.WhatsAppNumber, shareURL),
	}
	if uc.mailer != nil && in.EmployeeEmail != "" {
		// Falha de e-mail não desfaz o despacho; o link segue disponível.
		_ = uc.mailer.SendCountingLink(in.EmployeeEmail, c.EmployeeName, c.InternalID, shareURL)
	}
	return resp, nil
}
