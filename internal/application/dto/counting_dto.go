package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// CreateCountingRequest cria e despacha uma contagem.
// ScheduledDate ("2006-01-02") e ScheduledTime ("15:04") são opcionais, mas
// andam juntos; EmployeeEmail opcional dispara o e-mail com o link.
type CreateCountingRequest struct {
	SectorIDs      []string `json:"sector_ids"`
	ScheduledDate  *string  `json:"scheduled_date"`
	ScheduledTime  *string  `json:"scheduled_time"`
	EmployeeName   string   `json:"employee_name"`
	EmployeeEmail  string   `json:"employee_email"`
	WhatsAppNumber string   `json:"whatsapp_number"`
}

// ExtendCountingRequest estende o prazo (ou reativa uma contagem expirada).
type ExtendCountingRequest struct {
	Hours int `json:"hours"`
}

// SubmitItemRequest envia a quantidade contada de um produto (link público).
type SubmitItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes"`
	CountedBy string          `json:"counted_by"`
}

// CountingResponse contagem serializada para a UI, com o estado de exibição
// derivado (tempo restante) calculado no momento da resposta.
type CountingResponse struct {
	ID             string                 `json:"id"`
	InternalID     string                 `json:"internal_id"`
	Status         entity.CountingStatus  `json:"status"`
	SectorIDs      []string               `json:"sector_ids"`
	ScheduledDate  *string                `json:"scheduled_date,omitempty"`
	ScheduledTime  *string                `json:"scheduled_time,omitempty"`
	ExpiresAt      *time.Time             `json:"expires_at,omitempty"`
	EmployeeName   string                 `json:"employee_name"`
	WhatsAppNumber string                 `json:"whatsapp_number"`
	Display        counting.DisplayState  `json:"display"`
	CanReopen      bool                   `json:"can_reopen"`
	CreatedAt      time.Time              `json:"created_at"`
	StartedAt      *time.Time             `json:"started_at,omitempty"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty"`
	ApprovedAt     *time.Time             `json:"approved_at,omitempty"`
}

// ToCountingResponse monta a resposta derivando o display de forma pura.
func ToCountingResponse(c *entity.Counting, now time.Time) CountingResponse {
	return CountingResponse{
		ID:             c.ID,
		InternalID:     c.InternalID,
		Status:         c.Status,
		SectorIDs:      c.SectorIDs,
		ScheduledDate:  c.ScheduledDate,
		ScheduledTime:  c.ScheduledTime,
		ExpiresAt:      c.ExpiresAt,
		EmployeeName:   c.EmployeeName,
		WhatsAppNumber: c.WhatsAppNumber,
		Display:        counting.DeriveDisplay(c, now),
		CanReopen:      counting.CanReopen(c, now),
		CreatedAt:      c.CreatedAt,
		StartedAt:      c.StartedAt,
		CompletedAt:    c.CompletedAt,
		ApprovedAt:     c.ApprovedAt,
	}
}

// DispatchResponse resultado da criação: contagem + links de envio.
type DispatchResponse struct {
	Counting    CountingResponse `json:"counting"`
	ShareURL    string           `json:"share_url"`
	WhatsAppURL string           `json:"whatsapp_url"`
}

// ApprovalResponse resumo da aprovação para feedback do usuário.
type ApprovalResponse struct {
	MovementsCreated int `json:"movements_created"`
}

// CountedItemResponse item contado serializado.
type CountedItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	CountedBy string          `json:"counted_by"`
	CountedAt time.Time       `json:"counted_at"`
}

// ToCountedItemResponse converte a entidade.
func ToCountedItemResponse(it *entity.CountedItem) CountedItemResponse {
	return CountedItemResponse{
		ProductID: it.ProductID,
		Quantity:  it.CountedQuantity,
		Notes:     it.Notes,
		CountedBy: it.CountedBy,
		CountedAt: it.CountedAt,
	}
}

// CountingSheetResponse folha de contagem do link público: a contagem, os
// produtos dos setores cobertos e o que já foi contado.
type CountingSheetResponse struct {
	Counting CountingResponse      `json:"counting"`
	Products []ProductResponse     `json:"products"`
	Items    []CountedItemResponse `json:"items"`
}
