// Package pdf gera o relatório de contagem em PDF (Maroto v2).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ  │  Contagem #NNN + Status          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DADOS: colaborador, setores, prazos                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Setor | Un | Sistema | Contado | Dif.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: totais de linhas e divergências                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 16, Green: 86, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ appcounting.PDFGenerator = (*CountingReportGenerator)(nil)

// CountingReportGenerator implementa counting.PDFGenerator usando Maroto v2.
type CountingReportGenerator struct{}

func NewCountingReportGenerator() *CountingReportGenerator { return &CountingReportGenerator{} }

// GenerateCountingPDF gera o PDF do relatório e devolve seus bytes.
func (g *CountingReportGenerator) GenerateCountingPDF(_ context.Context, data *appcounting.ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Contagem", true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(data.Lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa + CNPJ (esq) e número da contagem + status (dir).
func headerRow(data *appcounting.ReportData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(data.Company.CNPJ, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE CONTAGEM", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+data.Counting.InternalID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Status: "+statusLabel(data.Counting.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// infoRow: colaborador, setores e datas da contagem.
func infoRow(data *appcounting.ReportData) core.Row {
	sectors := ""
	for i, s := range data.Sectors {
		if i > 0 {
			sectors += ", "
		}
		sectors += s.Name
	}
	created := data.Counting.CreatedAt.Format("02/01/2006 15:04")
	completed := "—"
	if data.Counting.CompletedAt != nil {
		completed = data.Counting.CompletedAt.Format("02/01/2006 15:04")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DADOS DA CONTAGEM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Colaborador: %s   |   Setores: %s",
				nonEmpty(data.Counting.EmployeeName, "—"), nonEmpty(sectors, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Criada em: %s   |   Concluída em: %s", created, completed),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("Setor", 2, align.Left),
		h("Un", 1, align.Center),
		h("Sistema", 2, align.Right),
		h("Contado", 2, align.Right),
		h("Dif.", 1, align.Right),
	)
}

// tableLineRows: uma linha por produto contado; divergência em vermelho.
func tableLineRows(lines []appcounting.ReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		diffColor := colorGray
		if !l.Diff.IsZero() {
			diffColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(l.ProductName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(l.SectorName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(1).Add(text.New(l.Unit, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(l.SystemQty.String(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(l.CountedQty.String(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(1).Add(text.New(l.Diff.String(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: diffColor,
			})),
		))
	}
	return result
}

// summaryRow: total de itens contados e quantos divergiram do sistema.
func summaryRow(lines []appcounting.ReportLine) core.Row {
	diverged := 0
	for _, l := range lines {
		if !l.Diff.IsZero() {
			diverged++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d produto(s) contado(s)   |   %d com divergência", len(lines), diverged),
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary}),
		),
	)
}

func statusLabel(s entity.CountingStatus) string {
	switch s {
	case entity.StatusPending:
		return "Pendente"
	case entity.StatusInProgress:
		return "Em andamento"
	case entity.StatusCompleted:
		return "Concluída"
	case entity.StatusApproved:
		return "Aprovada"
	case entity.StatusExpired:
		return "Expirada"
	}
	return string(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
