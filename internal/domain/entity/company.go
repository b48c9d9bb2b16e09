package entity

import "time"

// Company is the issuing company/store owner. Like clients, company fields
// are snapshotted onto documents at creation time.
type Company struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Address    string    `gorm:"size:255" json:"address"`
	City       string    `gorm:"size:100" json:"city"`
	Province   string    `gorm:"size:10" json:"province"`
	PostalCode string    `gorm:"size:10" json:"postal_code"`
	VATNumber  string    `gorm:"size:20" json:"vat_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}
