package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is a consolidated delivery note (DDT). Id and number are
// independently allocated monotonic sequences. Client and company identity
// fields are denormalized copies taken at creation time so the document
// stays historically accurate.
type Document struct {
	ID       int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Number   int64     `gorm:"uniqueIndex;not null" json:"number"`
	IssuedAt time.Time `gorm:"not null" json:"issued_at"`

	CompanyID         int64  `gorm:"not null;index" json:"company_id"`
	CompanyName       string `gorm:"size:255" json:"company_name"`
	CompanyAddress    string `gorm:"size:255" json:"company_address"`
	CompanyCity       string `gorm:"size:100" json:"company_city"`
	CompanyProvince   string `gorm:"size:10" json:"company_province"`
	CompanyPostalCode string `gorm:"size:10" json:"company_postal_code"`
	CompanyVATNumber  string `gorm:"size:20" json:"company_vat_number"`

	ClientID         int64  `gorm:"not null;index" json:"client_id"`
	ClientName       string `gorm:"size:255" json:"client_name"`
	ClientAddress    string `gorm:"size:255" json:"client_address"`
	ClientCity       string `gorm:"size:100" json:"client_city"`
	ClientProvince   string `gorm:"size:10" json:"client_province"`
	ClientPostalCode string `gorm:"size:10" json:"client_postal_code"`
	ClientVATNumber  string `gorm:"size:20" json:"client_vat_number"`
	ClientFiscalCode string `gorm:"size:20" json:"client_fiscal_code"`

	NetTotal  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"net_total"`
	VATTotal  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"vat_total"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	LineCount int             `gorm:"not null" json:"line_count"`
	Note      string          `gorm:"size:500" json:"note"`
	TaskID    *int64          `gorm:"index" json:"task_id,omitempty"`
	CreatedBy uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Lines []DocumentLine `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// DocumentLine is one consolidated, priced line inside a document. A nil
// TicketID means the line came from a manual entry; exactly one of the two
// origins applies per line.
type DocumentLine struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	DocumentID  int64           `gorm:"not null;index" json:"document_id"`
	TicketID    *int64          `gorm:"index" json:"ticket_id,omitempty"`
	ArticleID   int64           `gorm:"not null" json:"article_id"`
	Description string          `gorm:"size:255" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,8);not null" json:"unit_price"` // VAT-exclusive, 8 digits
	VATRate     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_rate"`    // percent
	DiscountPct decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_pct"`
	NetAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"net_amount"`
	VATAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"vat_amount"`
	Manual      bool            `gorm:"default:false" json:"manual"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for the DocumentLine model
func (DocumentLine) TableName() string {
	return "document_lines"
}
