package request

import (
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ManualLineRequest is one free-form line entered by the operator. The unit
// price is VAT-inclusive, the way the operator reads it off the label.
type ManualLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	VATClass    enum.VATClass   `json:"vat_class"`
	Expiry      *time.Time      `json:"expiry"`
}

// CreateDocumentRequest represents the consolidation request payload.
// Discounts maps a selected ticket id to a percentage in [0, 100].
type CreateDocumentRequest struct {
	ClientID       int64                     `json:"client_id" binding:"required"`
	CompanyID      int64                     `json:"company_id"`
	TicketIDs      []int64                   `json:"ticket_ids"`
	ManualLines    []ManualLineRequest       `json:"manual_lines"`
	Discounts      map[int64]decimal.Decimal `json:"discounts"`
	ManualDiscount decimal.Decimal           `json:"manual_discount"`
	Note           string                    `json:"note"`
	TaskID         *int64                    `json:"task_id"`
}

// PreviewDocumentRequest asks for a consolidation dry run. It carries the
// same selection shape as a create without the document header fields.
type PreviewDocumentRequest struct {
	CompanyID      int64                     `json:"company_id"`
	TicketIDs      []int64                   `json:"ticket_ids"`
	ManualLines    []ManualLineRequest       `json:"manual_lines"`
	Discounts      map[int64]decimal.Decimal `json:"discounts"`
	ManualDiscount decimal.Decimal           `json:"manual_discount"`
}
