package counting

import (
	"context"
	"time"

	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// SweepUseCase é a varredura explícita de expiração: percorre as contagens
// ativas de todas as empresas e expira as vencidas. É invocada por um ticker
// em segundo plano. O mesmo pré-check de vencimento também roda antes das
// transições e ao carregar uma contagem individual (Get e acesso por token);
// listagens nunca expiram nada. Idempotente: repetir a varredura sobre uma
// contagem já expirada não produz escrita efetiva.
type SweepUseCase struct {
	countingRepo repository.CountingRepository
	notifRepo    repository.NotificationRepository
	batchSize    int
}

// NewSweepUseCase constrói o caso de uso.
func NewSweepUseCase(countingRepo repository.CountingRepository, notifRepo repository.NotificationRepository) *SweepUseCase {
	return &SweepUseCase{countingRepo: countingRepo, notifRepo: notifRepo, batchSize: 500}
}

// Sweep expira as contagens vencidas e devolve quantas escritas foram
// efetivas. Dois viewers concorrentes escrevem o mesmo valor alvo; o perdedor
// do compare-and-swap é um no-op inofensivo.
func (uc *SweepUseCase) Sweep(ctx context.Context) (int, error) {
	active, err := uc.countingRepo.ListActive(uc.batchSize)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	expired := 0
	for _, c := range active {
		if expireIfOverdue(uc.countingRepo, uc.notifRepo, c, now) {
			expired++
		}
	}
	return expired, nil
}
