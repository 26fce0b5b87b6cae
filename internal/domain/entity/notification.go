package entity

import "time"

// Tipos de notificação gravados pelo backend e consultados por polling.
const (
	NotificationCountingExpired  = "counting_expired"
	NotificationCountingFinished = "counting_finished"
	NotificationCountingApproved = "counting_approved"
	NotificationInvoiceOverdue   = "invoice_overdue"
)

// Notification é um aviso persistido para a UI (diff-and-store + polling).
type Notification struct {
	ID          string
	CompanyID   string
	Type        string
	Title       string
	Message     string
	ReferenceID string // ID da contagem/fatura relacionada
	Read        bool
	CreatedAt   time.Time
}
