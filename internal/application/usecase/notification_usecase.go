package usecase

import (
	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// NotificationUseCase consulta de notificações (polling da UI) e marcação de
// leitura. A gravação acontece nos fluxos de contagem e faturamento.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List lista as notificações da empresa, opcionalmente só as não lidas.
func (uc *NotificationUseCase) List(companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	return uc.notifRepo.ListByCompany(companyID, onlyUnread, limit, offset)
}

// MarkRead marca uma notificação como lida.
func (uc *NotificationUseCase) MarkRead(companyID, id string) error {
	return uc.notifRepo.MarkRead(companyID, id)
}
