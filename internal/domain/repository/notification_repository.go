package repository

import "github.com/contaestoque/contagem-api/internal/domain/entity"

// NotificationRepository define o porto de notificações (diff-and-store,
// consumido por polling da UI).
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByCompany(companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(companyID, id string) error
}
