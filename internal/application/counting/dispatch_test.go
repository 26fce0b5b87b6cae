package counting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	counting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/application/dto"
	"github.com/contaestoque/contagem-api/internal/domain"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Despacho: criação da contagem com sequencial por empresa e links de envio
// ──────────────────────────────────────────────────────────────────────────────

func newDispatchFixture() (*counting.DispatchUseCase, *memCountingRepo, *recordMailer) {
	countingRepo := newMemCountingRepo()
	sectorRepo := newMemSectorRepo(
		&entity.Sector{ID: "setor-1", CompanyID: companyA, Name: "Cozinha"},
		&entity.Sector{ID: "setor-2", CompanyID: companyA, Name: "Estoque Seco"},
		&entity.Sector{ID: "setor-b", CompanyID: companyB, Name: "Câmara Fria"},
	)
	mailer := &recordMailer{}
	uc := counting.NewDispatchUseCase(&memTxRunner{repo: countingRepo}, sectorRepo, stubLinks{}, mailer)
	return uc, countingRepo, mailer
}

func TestDispatch_CriaContagemPendente(t *testing.T) {
	uc, repo, _ := newDispatchFixture()

	resp, err := uc.Dispatch(context.Background(), companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs:      []string{"setor-1", "setor-2"},
		EmployeeName:   "Maria",
		WhatsAppNumber: "+55 (11) 98888-7777",
	})
	require.NoError(t, err)

	assert.Equal(t, "001", resp.Counting.InternalID)
	assert.Equal(t, entity.StatusPending, resp.Counting.Status)
	assert.Contains(t, resp.ShareURL, "https://app.test/contagem/")
	assert.Contains(t, resp.WhatsAppURL, "wa.me")

	// Persistida com token e setores.
	saved, err := repo.GetByID(companyA, resp.Counting.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ShareToken)
	assert.ElementsMatch(t, []string{"setor-1", "setor-2"}, saved.SectorIDs)
	assert.NotNil(t, saved.ExpiresAt, "sem agendamento, o prazo padrão deve ser gravado")
}

func TestDispatch_SequencialPorEmpresa(t *testing.T) {
	uc, _, _ := newDispatchFixture()
	ctx := context.Background()

	first, err := uc.Dispatch(ctx, companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
	})
	require.NoError(t, err)
	second, err := uc.Dispatch(ctx, companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
	})
	require.NoError(t, err)
	other, err := uc.Dispatch(ctx, companyB, "user-2", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-b"}, EmployeeName: "Pedro",
	})
	require.NoError(t, err)

	assert.Equal(t, "001", first.Counting.InternalID)
	assert.Equal(t, "002", second.Counting.InternalID)
	assert.Equal(t, "001", other.Counting.InternalID, "cada empresa tem seu próprio sequencial")
}

func TestDispatch_ValidaEntrada(t *testing.T) {
	uc, _, _ := newDispatchFixture()
	ctx := context.Background()

	cases := []struct {
		nome    string
		in      dto.CreateCountingRequest
		wantErr error
	}{
		{
			nome:    "sem setores",
			in:      dto.CreateCountingRequest{EmployeeName: "Maria"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nome:    "sem colaborador",
			in:      dto.CreateCountingRequest{SectorIDs: []string{"setor-1"}},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nome: "data sem hora",
			in: dto.CreateCountingRequest{
				SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
				ScheduledDate: ptr("2026-09-10"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nome: "data inválida",
			in: dto.CreateCountingRequest{
				SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
				ScheduledDate: ptr("10/09/2026"), ScheduledTime: ptr("14:00"),
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nome: "setor inexistente",
			in: dto.CreateCountingRequest{
				SectorIDs: []string{"setor-x"}, EmployeeName: "Maria",
			},
			wantErr: domain.ErrNotFound,
		},
		{
			nome: "setor de outra empresa",
			in: dto.CreateCountingRequest{
				SectorIDs: []string{"setor-b"}, EmployeeName: "Maria",
			},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			_, err := uc.Dispatch(ctx, companyA, "user-1", tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDispatch_ComAgendamento(t *testing.T) {
	uc, repo, _ := newDispatchFixture()

	resp, err := uc.Dispatch(context.Background(), companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs:     []string{"setor-1"},
		EmployeeName:  "Maria",
		ScheduledDate: ptr("2099-12-31"),
		ScheduledTime: ptr("18:00"),
	})
	require.NoError(t, err)

	saved, err := repo.GetByID(companyA, resp.Counting.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.ScheduledDate)
	require.NotNil(t, saved.ScheduledTime)
	assert.Equal(t, "2099-12-31", *saved.ScheduledDate)
	assert.Equal(t, "18:00", *saved.ScheduledTime)
}

func TestDispatch_EnviaEmailQuandoInformado(t *testing.T) {
	uc, _, mailer := newDispatchFixture()
	ctx := context.Background()

	_, err := uc.Dispatch(ctx, companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
		EmployeeEmail: "maria@exemplo.com.br",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"maria@exemplo.com.br"}, mailer.sent)

	// Sem e-mail informado, nada é enviado.
	_, err = uc.Dispatch(ctx, companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
	})
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 1)
}

func TestDispatch_FalhaDeEmailNaoDesfazODespacho(t *testing.T) {
	countingRepo := newMemCountingRepo()
	sectorRepo := newMemSectorRepo(&entity.Sector{ID: "setor-1", CompanyID: companyA, Name: "Cozinha"})
	uc := counting.NewDispatchUseCase(&memTxRunner{repo: countingRepo}, sectorRepo, stubLinks{}, &recordMailer{fail: true})

	resp, err := uc.Dispatch(context.Background(), companyA, "user-1", dto.CreateCountingRequest{
		SectorIDs: []string{"setor-1"}, EmployeeName: "Maria",
		EmployeeEmail: "maria@exemplo.com.br",
	})
	require.NoError(t, err, "falha de SMTP não pode abortar o despacho")
	_, err = countingRepo.GetByID(companyA, resp.Counting.ID)
	assert.NoError(t, err)
}

func TestFormatInternalID(t *testing.T) {
	assert.Equal(t, "001", counting.FormatInternalID(1))
	assert.Equal(t, "042", counting.FormatInternalID(42))
	assert.Equal(t, "1000", counting.FormatInternalID(1000))
}
