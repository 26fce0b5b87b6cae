package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/pkg/config"
)

var _ appcounting.DispatchMailer = (*Mailer)(nil)

// Mailer envia o link da contagem por e-mail via SMTP (gomail).
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer constrói o mailer a partir da configuração SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// SendCountingLink envia o e-mail de despacho com o link público da contagem.
func (m *Mailer) SendCountingLink(to, employeeName, internalID, shareURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Contagem de estoque #%s", internalID))
	msg.SetBody("text/html", fmt.Sprintf(`
		<p>Olá, %s!</p>
		<p>Você foi designado para realizar a contagem de estoque <strong>#%s</strong>.</p>
		<p>Acesse o link abaixo para iniciar:</p>
		<p><a href="%s">%s</a></p>
		<p>ContaEstoque</p>`,
		employeeName, internalID, shareURL, shareURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send counting link email: %w", err)
	}
	return nil
}
