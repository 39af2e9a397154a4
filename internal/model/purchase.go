package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records a vendor invoice for stock received into inventory.
// Totals are computed by the purchase recorder, never taken from the caller.
type Purchase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendorName  string    `gorm:"not null"`
	InvoiceNo   string    `gorm:"index;not null"`
	InvoiceDate string
	GSTIN       string
	// Intra-state split: CGST and SGST are always half of the total tax each.
	TaxableAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CGST          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SGST          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RoundOff      decimal.Decimal `gorm:"type:decimal(6,2)"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseItem is one line of a vendor invoice.
type PurchaseItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName string    `gorm:"not null"`
	HSNCode     string
	Quantity    int             `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2)"`
	GSTPct      decimal.Decimal `gorm:"type:decimal(5,2)"`
	Taxable     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
