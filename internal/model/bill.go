package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill types. Only product bills carry stock-checked line items; the fee
// charged on consulting/treatment bills comes from the matching fee field.
const (
	BillTypeConsulting = "Consulting"
	BillTypeTreatment  = "Treatment"
	BillTypeProduct    = "Product"
)

// Payment methods accepted on a bill.
const (
	PaymentUPI  = "UPI"
	PaymentCash = "Cash"
)

// Bill is a generated invoice for a patient interaction. BillNo is the
// caller-assigned id; totals are always re-derived from Items at read time.
type Bill struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillNo        string    `gorm:"uniqueIndex;not null"`
	Name          string
	Phone         string
	Address       string
	BillType      string `gorm:"type:varchar(20)"` // Consulting | Treatment | Product | ""
	PaymentMethod string `gorm:"type:varchar(10);not null"`
	Date          string
	DiscountPct   decimal.Decimal `gorm:"type:decimal(5,2)"`
	ConsultingFee decimal.Decimal `gorm:"type:decimal(10,2)"`
	TreatmentFee  decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []BillItem `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// BillItem is one persisted line of a bill. For product lines all fields are
// set; note lines on consulting/treatment bills carry only the description.
// BaseTotal, GSTAmount and FinalAmount are computed server-side and stored
// for display only; the billing engine never trusts them on read.
type BillItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	HSNCode     string
	Quantity    int
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`
	GSTPct      decimal.Decimal `gorm:"type:decimal(5,2)"`
	BaseTotal   decimal.Decimal `gorm:"type:decimal(12,2)"`
	// GSTAmount is informational: prices are tax-inclusive, so the charged
	// line amount stays BaseTotal.
	GSTAmount   decimal.Decimal `gorm:"type:decimal(12,2)"`
	FinalAmount decimal.Decimal `gorm:"type:decimal(12,2)"`
}
