package entity

import (
	"fmt"
	"time"
)

// CountingStatus é o tipo fechado de status de uma contagem.
// Strings desconhecidas são rejeitadas na fronteira de persistência (ParseCountingStatus).
type CountingStatus string

// Status válidos de uma contagem.
const (
	StatusPending    CountingStatus = "pending"     // criada, aguardando início
	StatusInProgress CountingStatus = "in_progress" // colaborador contando
	StatusCompleted  CountingStatus = "completed"   // encerrada pelo colaborador
	StatusApproved   CountingStatus = "approved"    // aprovada e reconciliada (terminal)
	StatusExpired    CountingStatus = "expired"     // prazo vencido ou encerramento forçado
)

// ParseCountingStatus valida uma string vinda do banco ou da API.
func ParseCountingStatus(s string) (CountingStatus, error) {
	switch CountingStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusApproved, StatusExpired:
		return CountingStatus(s), nil
	}
	return "", fmt.Errorf("status de contagem desconhecido: %q", s)
}

// Counting representa uma campanha de contagem de estoque (um ou mais setores).
// InternalID é sequencial por empresa, com três dígitos ("001", "002", ...).
// ScheduledDate ("2006-01-02") e ScheduledTime ("15:04") formam o prazo principal;
// ExpiresAt é o prazo alternativo quando não há agendamento.
// StartedAt/CompletedAt/ApprovedAt são gravados uma única vez, na transição correspondente.
type Counting struct {
	ID             string
	CompanyID      string
	InternalID     string
	Status         CountingStatus
	SectorIDs      []string // setores cobertos (≥1), tabela counting_sectors
	ScheduledDate  *string
	ScheduledTime  *string
	ExpiresAt      *time.Time
	EmployeeName   string
	WhatsAppNumber string
	ShareToken     string // token do link público de contagem (mobile)
	CreatedBy      string
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ApprovedAt     *time.Time
}
