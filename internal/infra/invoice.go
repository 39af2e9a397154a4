package infra

import "github.com/shopspring/decimal"

// Letterhead is the clinic identity block printed on every invoice.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// InvoiceLine is one printable row of an invoice. Product lines carry the
// full set of fields; note lines on consulting/treatment bills only have a
// description.
type InvoiceLine struct {
	Description string
	HSN         string
	Quantity    int
	Price       decimal.Decimal
	GSTPct      decimal.Decimal
	GSTAmount   decimal.Decimal
	Amount      decimal.Decimal
	Product     bool
}

// Invoice is the fully computed view of a bill handed to the renderers.
// Amounts arrive already rounded to 2 decimal places; renderers do no math.
type Invoice struct {
	BillNo        string
	PatientName   string
	Phone         string
	Address       string
	Date          string
	BillType      string
	PaymentMethod string

	Lines []InvoiceLine

	ItemSubtotal decimal.Decimal
	// FeeLabel is empty when the bill type carries no fee row.
	FeeLabel       string
	FeeAmount      decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	Clinic Letterhead
}
