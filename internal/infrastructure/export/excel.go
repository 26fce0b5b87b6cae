// Package export gera a planilha xlsx do relatório de contagem (excelize).
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appcounting "github.com/contaestoque/contagem-api/internal/application/counting"
)

var _ appcounting.ExcelExporter = (*ExcelExporter)(nil)

// ExcelExporter implementa counting.ExcelExporter usando excelize.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// GenerateCountingExcel monta a planilha do relatório e devolve seus bytes.
func (e *ExcelExporter) GenerateCountingExcel(_ context.Context, data *appcounting.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Contagem " + data.Counting.InternalID
	f.SetSheetName("Sheet1", sheet)

	// Cabeçalho
	f.SetCellValue(sheet, "A1", "Produto")
	f.SetCellValue(sheet, "B1", "Setor")
	f.SetCellValue(sheet, "C1", "Unidade")
	f.SetCellValue(sheet, "D1", "Qtde. sistema")
	f.SetCellValue(sheet, "E1", "Qtde. contada")
	f.SetCellValue(sheet, "F1", "Diferença")
	f.SetCellValue(sheet, "G1", "Contado por")
	f.SetCellValue(sheet, "H1", "Observações")

	// Linhas do relatório
	for i, l := range data.Lines {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), l.ProductName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), l.SectorName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), l.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), l.SystemQty.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), l.CountedQty.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", r), l.Diff.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", r), l.CountedBy)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", r), l.Notes)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: gravar planilha: %w", err)
	}
	return buf.Bytes(), nil
}
