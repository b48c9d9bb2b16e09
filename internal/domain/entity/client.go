package entity

import "time"

// Client is a customer receiving delivery documents. Documents snapshot
// these fields at creation time, so edits here never rewrite history.
type Client struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Address    string    `gorm:"size:255" json:"address"`
	City       string    `gorm:"size:100" json:"city"`
	Province   string    `gorm:"size:10" json:"province"`
	PostalCode string    `gorm:"size:10" json:"postal_code"`
	VATNumber  string    `gorm:"size:20" json:"vat_number"`
	FiscalCode string    `gorm:"size:20" json:"fiscal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
