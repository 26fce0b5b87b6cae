package notify

import (
	"fmt"
	"net/url"
	"strings"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
)

var _ appcounting.LinkBuilder = (*LinkBuilder)(nil)

// LinkBuilder monta o link público da contagem e a URL wa.me de envio.
type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder recebe a base pública (ex. https://app.exemplo.com/contagem).
func NewLinkBuilder(baseURL string) *LinkBuilder {
	return &LinkBuilder{baseURL: strings.TrimRight(baseURL, "/")}
}

// ShareURL monta o link público da contagem a partir do token.
func (b *LinkBuilder) ShareURL(token string) string {
	return b.baseURL + "/" + token
}

// WhatsAppURL monta a URL wa.me com o link pré-preenchido na mensagem.
// O telefone é normalizado para só dígitos, como o wa.me exige.
func (b *LinkBuilder) WhatsAppURL(phone, shareURL string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	msg := fmt.Sprintf("Olá! Você foi designado para uma contagem de estoque. Acesse: %s", shareURL)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(msg))
}
