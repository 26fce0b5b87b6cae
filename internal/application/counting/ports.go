package counting

import (
	"context"

	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando um
// repositório de contagens atado a essa tx. Garante que o sequencial interno,
// a contagem e seus setores sejam gravados atomicamente no despacho.
type TxRunner interface {
	Run(ctx context.Context, fn func(countingRepo repository.CountingRepository) error) error
}

// LinkBuilder monta o link público da contagem e a URL de envio por WhatsApp.
type LinkBuilder interface {
	ShareURL(token string) string
	WhatsAppURL(phone, shareURL string) string
}

// DispatchMailer envia o link da contagem por e-mail. Implementação pode ser
// nula (envio desabilitado).
type DispatchMailer interface {
	SendCountingLink(to, employeeName, internalID, shareURL string) error
}
