package counting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/contaestoque/contagem-api/internal/domain/entity"
	"github.com/contaestoque/contagem-api/internal/domain/repository"
)

// ReportLine é uma linha do relatório de contagem: contado × sistema.
type ReportLine struct {
	ProductName string
	SectorName  string
	Unit        string
	SystemQty   decimal.Decimal
	CountedQty  decimal.Decimal
	Diff        decimal.Decimal // CountedQty − SystemQty
	CountedBy   string
	Notes       string
}

// ReportData agrega tudo que o gerador de PDF/Excel precisa para o relatório.
type ReportData struct {
	Counting *entity.Counting
	Company  *entity.Company
	Sectors  []*entity.Sector
	Lines    []ReportLine
}

// PDFGenerator gera o relatório de contagem em PDF.
type PDFGenerator interface {
	GenerateCountingPDF(ctx context.Context, data *ReportData) ([]byte, error)
}

// ExcelExporter gera o relatório de contagem em planilha xlsx.
type ExcelExporter interface {
	GenerateCountingExcel(ctx context.Context, data *ReportData) ([]byte, error)
}

// ReportUseCase monta os dados do relatório de uma contagem e delega a
// renderização (PDF ou Excel) aos geradores de infraestrutura.
type ReportUseCase struct {
	countingRepo repository.CountingRepository
	itemRepo     repository.CountedItemRepository
	productRepo  repository.ProductRepository
	sectorRepo   repository.SectorRepository
	companyRepo  repository.CompanyRepository
	pdf          PDFGenerator
	excel        ExcelExporter
}

func NewReportUseCase(
	countingRepo repository.CountingRepository,
	itemRepo repository.CountedItemRepository,
	productRepo repository.ProductRepository,
	sectorRepo repository.SectorRepository,
	companyRepo repository.CompanyRepository,
	pdf PDFGenerator,
	excel ExcelExporter,
) *ReportUseCase {
	return &ReportUseCase{
		countingRepo: countingRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		sectorRepo:   sectorRepo,
		companyRepo:  companyRepo,
		pdf:          pdf,
		excel:        excel,
	}
}

// PDF gera o relatório em PDF; devolve os bytes e o nome do arquivo.
func (u *ReportUseCase) PDF(ctx context.Context, companyID, countingID string) ([]byte, string, error) {
	data, err := u.assemble(companyID, countingID)
	if err != nil {
		return nil, "", err
	}
	b, err := u.pdf.GenerateCountingPDF(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("contagem-%s.pdf", data.Counting.InternalID), nil
}

// Excel gera o relatório em xlsx; devolve os bytes e o nome do arquivo.
func (u *ReportUseCase) Excel(ctx context.Context, companyID, countingID string) ([]byte, string, error) {
	data, err := u.assemble(companyID, countingID)
	if err != nil {
		return nil, "", err
	}
	b, err := u.excel.GenerateCountingExcel(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("contagem-%s.xlsx", data.Counting.InternalID), nil
}

// assemble carrega contagem, empresa, setores, itens e produtos em lote
// e monta as linhas do relatório.
func (u *ReportUseCase) assemble(companyID, countingID string) (*ReportData, error) {
	c, err := u.countingRepo.GetByID(companyID, countingID)
	if err != nil {
		return nil, err
	}
	company, err := u.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	sectors, err := u.sectorRepo.ListByIDs(companyID, c.SectorIDs)
	if err != nil {
		return nil, err
	}
	sectorNames := make(map[string]string, len(sectors))
	for _, s := range sectors {
		sectorNames[s.ID] = s.Name
	}

	items, err := u.itemRepo.ListByCounting(c.ID)
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := u.productRepo.ListByIDs(companyID, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]ReportLine, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// produto removido depois da contagem; linha sem referência de sistema
			lines = append(lines, ReportLine{
				ProductName: "(produto removido)",
				CountedQty:  it.CountedQuantity,
				Diff:        it.CountedQuantity,
				CountedBy:   it.CountedBy,
				Notes:       it.Notes,
			})
			continue
		}
		lines = append(lines, ReportLine{
			ProductName: p.Name,
			SectorName:  sectorNames[p.SectorID],
			Unit:        p.Unit,
			SystemQty:   p.CurrentStock,
			CountedQty:  it.CountedQuantity,
			Diff:        it.CountedQuantity.Sub(p.CurrentStock),
			CountedBy:   it.CountedBy,
			Notes:       it.Notes,
		})
	}

	return &ReportData{Counting: c, Company: company, Sectors: sectors, Lines: lines}, nil
}
