package service

import (
	"sort"
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DocumentExport is the fiscal-export shape of a document. It is derived
// purely from the stored document and its lines, so re-deriving it at any
// later time yields the same result.
type DocumentExport struct {
	DocumentID     int64           `json:"document_id"`
	DocumentNumber int64           `json:"document_number"`
	IssuedAt       time.Time       `json:"issued_at"`
	CompanyName    string          `json:"company_name"`
	CompanyVAT     string          `json:"company_vat_number"`
	ClientName     string          `json:"client_name"`
	ClientVAT      string          `json:"client_vat_number"`
	ClientFiscal   string          `json:"client_fiscal_code"`
	Lines          []ExportLine    `json:"lines"`
	VATSummary     []VATSummaryRow `json:"vat_summary"`
	NetTotal       decimal.Decimal `json:"net_total"`
	VATTotal       decimal.Decimal `json:"vat_total"`
	Total          decimal.Decimal `json:"total"`
}

// ExportLine is one fiscal-export line. The unit price is VAT-exclusive at
// 8 fractional digits, as required by the export format.
type ExportLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
}

// VATSummaryRow groups document lines by VAT percentage.
type VATSummaryRow struct {
	VATRate decimal.Decimal `json:"vat_rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

// ExportService derives the fiscal-export shape from documents.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildExport derives the export shape for a document.
func (s *ExportService) BuildExport(doc *entity.Document) *DocumentExport {
	lines := make([]ExportLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, ExportLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
			DiscountPct: l.DiscountPct,
			NetAmount:   l.NetAmount,
			VATAmount:   l.VATAmount,
		})
	}

	return &DocumentExport{
		DocumentID:     doc.ID,
		DocumentNumber: doc.Number,
		IssuedAt:       doc.IssuedAt,
		CompanyName:    doc.CompanyName,
		CompanyVAT:     doc.CompanyVATNumber,
		ClientName:     doc.ClientName,
		ClientVAT:      doc.ClientVATNumber,
		ClientFiscal:   doc.ClientFiscalCode,
		Lines:          lines,
		VATSummary:     VATSummary(doc.Lines),
		NetTotal:       doc.NetTotal,
		VATTotal:       doc.VATTotal,
		Total:          doc.Total,
	}
}

// VATSummary groups lines by VAT percentage with per-group taxable base and
// tax amount, sorted by ascending rate. A pure function of the lines.
func VATSummary(lines []entity.DocumentLine) []VATSummaryRow {
	byRate := make(map[string]*VATSummaryRow)
	for _, l := range lines {
		key := l.VATRate.String()
		row, ok := byRate[key]
		if !ok {
			row = &VATSummaryRow{VATRate: l.VATRate, Taxable: decimal.Zero, Tax: decimal.Zero}
			byRate[key] = row
		}
		row.Taxable = row.Taxable.Add(l.NetAmount)
		row.Tax = row.Tax.Add(l.VATAmount)
	}

	rows := make([]VATSummaryRow, 0, len(byRate))
	for _, row := range byRate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].VATRate.LessThan(rows[j].VATRate)
	})
	return rows
}
