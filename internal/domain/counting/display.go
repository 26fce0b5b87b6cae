package counting

import (
	"fmt"
	"time"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// Tier é a severidade visual do tempo restante.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"  // resta ≤ 1 dia
	TierCritical Tier = "critical" // vencida
)

// DisplayState é o estado de exibição de uma contagem, derivado sem efeitos
// colaterais. A expiração automática é responsabilidade exclusiva do sweep e
// do pré-check das transições, nunca de um caminho de leitura.
type DisplayState struct {
	Label   string `json:"label"`
	Tier    Tier   `json:"tier"`
	Overdue bool   `json:"overdue"`
}

// DeriveDisplay calcula o rótulo de "tempo restante" de uma contagem.
// Função pura de (contagem, agora).
func DeriveDisplay(c *entity.Counting, now time.Time) DisplayState {
	switch c.Status {
	case entity.StatusApproved:
		return DisplayState{Label: "—", Tier: TierNormal}
	case entity.StatusCompleted:
		return DisplayState{Label: "Concluída", Tier: TierNormal}
	case entity.StatusExpired:
		return DisplayState{Label: "Expirada", Tier: TierCritical}
	}

	deadline, ok := Deadline(c)
	if !ok {
		return DisplayState{Label: "Sem prazo", Tier: TierNormal}
	}

	if now.After(deadline) {
		over := now.Sub(deadline)
		if days := int(over.Hours() / 24); days >= 1 {
			return DisplayState{Label: fmt.Sprintf("%dd atrasada", days), Tier: TierCritical, Overdue: true}
		}
		hours := int(over.Hours())
		if hours < 1 {
			hours = 1
		}
		return DisplayState{Label: fmt.Sprintf("%dh atrasada", hours), Tier: TierCritical, Overdue: true}
	}

	left := deadline.Sub(now)
	tier := TierNormal
	if left <= 24*time.Hour {
		tier = TierWarning
	}
	if days := int(left.Hours() / 24); days >= 1 {
		return DisplayState{Label: fmt.Sprintf("%dd restantes", days), Tier: tier}
	}
	if hours := int(left.Hours()); hours >= 1 {
		return DisplayState{Label: fmt.Sprintf("%dh restantes", hours), Tier: tier}
	}
	mins := int(left.Minutes())
	if mins < 1 {
		mins = 1
	}
	return DisplayState{Label: fmt.Sprintf("%dmin restantes", mins), Tier: tier}
}
