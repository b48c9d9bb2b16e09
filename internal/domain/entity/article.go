package entity

import (
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomArticleCode is the reserved code of the sentinel article that
// backs manual lines. Exactly one such article exists; the line source
// adapter creates it lazily on first use.
const CustomArticleCode = "CUSTOM"

// Article is a sellable product as configured on the scales. The list
// price is VAT-inclusive, matching the scale-side convention.
type Article struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	VATClass    enum.VATClass   `gorm:"default:0" json:"vat_class"`
	IsCustom    bool            `gorm:"default:false" json:"is_custom"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for the Article model
func (Article) TableName() string {
	return "articles"
}
