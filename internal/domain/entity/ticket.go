package entity

import (
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Ticket represents a single weighing/sale transaction captured at a scale.
// The id is assigned by the scale device, never by this system, so the
// primary key does not auto-increment. Tickets are created by the device
// import feed and only their status is ever mutated here.
type Ticket struct {
	ID        int64             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CompanyID int64             `gorm:"not null;index" json:"company_id"`
	StoreID   int64             `gorm:"index" json:"store_id"`
	ScaleID   int64             `json:"scale_id"`
	Status    enum.TicketStatus `gorm:"default:0;index" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Lines []TicketLine `gorm:"foreignKey:TicketID" json:"lines,omitempty"`
}

// TableName returns the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}

// TicketLine is one weighed product entry belonging to a ticket. Lines are
// source-of-truth data from the scale and are immutable once created.
type TicketLine struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	TicketID    int64             `gorm:"not null;index" json:"ticket_id"`
	ArticleID   int64             `gorm:"not null" json:"article_id"`
	Description string            `gorm:"size:255" json:"description"`
	Quantity    decimal.Decimal   `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Behavior    enum.LineBehavior `gorm:"default:0" json:"behavior"`
	Expiry      *time.Time        `json:"expiry,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TableName returns the table name for the TicketLine model
func (TicketLine) TableName() string {
	return "ticket_lines"
}
