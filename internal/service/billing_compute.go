package service

import (
	"clinicore/internal/model"

	"github.com/shopspring/decimal"
)

// ProductLine is a stock-backed bill line. Only product bills carry these;
// each one is checked against and decremented from inventory at creation.
type ProductLine struct {
	Description string
	HSN         string
	GSTPct      decimal.Decimal
	Quantity    int
	Price       decimal.Decimal
}

// NoteLine is a description-only line on consulting and treatment bills.
// It never contributes to the chargeable total.
type NoteLine struct {
	Description string
}

// StatementRow is one computed, display-ready bill line.
type StatementRow struct {
	Description string
	HSN         string
	Quantity    int
	Price       decimal.Decimal
	GSTPct      decimal.Decimal
	BaseTotal   decimal.Decimal
	GSTAmount   decimal.Decimal
	FinalAmount decimal.Decimal
	Product     bool
}

// Statement is the computed monetary view of a bill. All exported amounts
// are rounded to 2 decimal places; the computation itself runs the full
// multiplication/addition chain first and rounds once at the end.
type Statement struct {
	Rows           []StatementRow
	ItemSubtotal   decimal.Decimal
	FeeLabel       string
	FeeAmount      decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// computeStatement derives every monetary figure of a bill from first
// principles. Caller-supplied aggregates are never trusted; only price,
// quantity and the GST percentage enter the calculation.
//
// The GST amount is informational: prices are tax-inclusive, so the charged
// line amount equals the base total. The fee applies only to the matching
// bill type, and the subtotal is floored at zero before the discount.
func computeStatement(billType string, products []ProductLine, notes []NoteLine,
	discountPct, consultingFee, treatmentFee decimal.Decimal) *Statement {

	st := &Statement{DiscountPct: discountPct}
	itemSubtotal := decimal.Zero

	for _, line := range products {
		base := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		gstAmount := base.Mul(line.GSTPct).Div(oneHundred)
		itemSubtotal = itemSubtotal.Add(base)
		st.Rows = append(st.Rows, StatementRow{
			Description: line.Description,
			HSN:         line.HSN,
			Quantity:    line.Quantity,
			Price:       line.Price,
			GSTPct:      line.GSTPct,
			BaseTotal:   base.Round(2),
			GSTAmount:   gstAmount.Round(2),
			FinalAmount: base.Round(2),
			Product:     true,
		})
	}
	for _, line := range notes {
		st.Rows = append(st.Rows, StatementRow{Description: line.Description})
	}

	fee := decimal.Zero
	switch billType {
	case model.BillTypeConsulting:
		fee = consultingFee
		st.FeeLabel = "Consulting Fee"
	case model.BillTypeTreatment:
		fee = treatmentFee
		st.FeeLabel = "Treatment Fee"
	}
	st.FeeAmount = fee.Round(2)

	subtotal := itemSubtotal.Add(fee)
	if subtotal.IsNegative() {
		subtotal = decimal.Zero
	}
	discountAmount := subtotal.Mul(discountPct).Div(oneHundred)
	total := subtotal.Sub(discountAmount)

	st.ItemSubtotal = itemSubtotal.Round(2)
	st.Subtotal = subtotal.Round(2)
	st.DiscountAmount = discountAmount.Round(2)
	st.Total = total.Round(2)
	return st
}
