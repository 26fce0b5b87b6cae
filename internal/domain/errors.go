package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
)

// IllegalTransitionError indica uma transição fora do grafo de status permitido.
// É rejeitada antes de qualquer escrita remota.
type IllegalTransitionError struct {
	Action string // start, complete, approve, reopen, extend, force_stop, expire
	From   string
	To     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transição ilegal (%s): %s → %s", e.Action, e.From, e.To)
}

// PartialReconciliationError indica que os lançamentos de movimentação foram
// gravados mas alguma atualização de estoque falhou. Os produtos já
// atualizados NÃO são revertidos; o status da contagem NÃO avança para
// approved e o operador deve repetir a aprovação após revisão manual.
type PartialReconciliationError struct {
	MovementsCreated int
	UpdatedProducts  []string // estoques já confirmados
	FailedProducts   []string // estoques que falharam
	Err              error    // primeira falha subjacente
}

func (e *PartialReconciliationError) Error() string {
	return fmt.Sprintf("reconciliação parcial: %d lançamento(s) gravado(s), estoque pendente em [%s]: %v",
		e.MovementsCreated, strings.Join(e.FailedProducts, ", "), e.Err)
}

func (e *PartialReconciliationError) Unwrap() error { return e.Err }
