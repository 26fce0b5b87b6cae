package pdf

import (
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

	"github.com/contaestoque/contagem-api/internal/application/billing"
	"github.com/contaestoque/contagem-api/internal/domain/entity"
)

var _ billing.InvoicePDFGenerator = (*InvoiceGenerator)(nil)

// InvoiceGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type InvoiceGenerator struct{}

func NewInvoiceGenerator() *InvoiceGenerator { return &InvoiceGenerator{} }

// GenerateInvoicePDF gera o PDF da fatura e devolve seus bytes.
func (g *InvoiceGenerator) GenerateInvoicePDF(data *billing.InvoicePDFData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fatura "+data.Invoice.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(invoiceHeaderRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(invoiceBodyRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalRow(data.Invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar fatura: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceHeaderRow: empresa (esq) e número + status da fatura (dir).
func invoiceHeaderRow(data *billing.InvoicePDFData) core.Row {
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
			text.New("FATURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Status: "+invoiceStatusLabel(data.Invoice.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// invoiceBodyRow: plano, emissão, vencimento e pagamento.
func invoiceBodyRow(data *billing.InvoicePDFData) core.Row {
	paid := "—"
	if data.Invoice.PaidAt != nil {
		paid = data.Invoice.PaidAt.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DADOS DA FATURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Plano: %s   |   Emitida em: %s",
				nonEmpty(data.PlanName, "—"), data.Invoice.CreatedAt.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Vencimento: %s   |   Pagamento: %s",
				data.Invoice.DueDate.Format("02/01/2006"), paid,
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func invoiceTotalRow(inv *entity.Invoice) core.Row {
	c := colorPrimary
	if inv.Status == entity.InvoiceOverdue {
		c = colorRed
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: R$ %s", inv.Amount.StringFixed(2)),
				props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2, Color: c}),
		),
	)
}

func invoiceStatusLabel(s string) string {
	switch s {
	case entity.InvoiceOpen:
		return "Em aberto"
	case entity.InvoicePaid:
		return "Paga"
	case entity.InvoiceOverdue:
		return "Vencida"
	}
	return s
}
