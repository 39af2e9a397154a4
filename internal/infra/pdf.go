package infra

// pdf.go: fixed-layout invoice rendering using go-pdf/fpdf.
// Produces an A4 invoice with:
//   - Clinic letterhead
//   - Bill number, date, payment method
//   - Patient block (name, phone, address)
//   - Item table (description, HSN, qty, price, GST, amount)
//   - Subtotal, fee row (consulting or treatment only), discount, bold total

import (
	"bytes"
	"context"
	"fmt"

	"clinicore/internal/apierror"

	"github.com/go-pdf/fpdf"
)

// RenderInvoicePDF converts a computed invoice into PDF bytes. The layout
// conversion is bounded by ctx; expiry or a renderer failure surfaces as a
// conversion error so the handler returns a plain 500.
func RenderInvoicePDF(ctx context.Context, inv *Invoice) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		data, err := renderPDF(inv)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, apierror.Wrap(apierror.KindConversion, "invoice conversion timed out", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, apierror.Wrap(apierror.KindConversion, "invoice conversion failed", res.err)
		}
		return res.data, nil
	}
}

func renderPDF(inv *Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Letterhead ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, inv.Clinic.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if inv.Clinic.Address != "" {
		pdf.CellFormat(contentW, 5, inv.Clinic.Address, "", 1, "C", false, 0, "")
	}
	if inv.Clinic.Phone != "" {
		pdf.CellFormat(contentW, 5, "Phone: "+inv.Clinic.Phone, "", 1, "C", false, 0, "")
	}
	if inv.Clinic.GSTIN != "" {
		pdf.CellFormat(contentW, 5, "GSTIN: "+inv.Clinic.GSTIN, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Bill header ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	title := "INVOICE"
	if inv.BillType != "" {
		title = fmt.Sprintf("INVOICE - %s", inv.BillType)
	}
	pdf.CellFormat(contentW, 7, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Bill No: "+inv.BillNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Date: "+inv.Date, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Patient: "+inv.PatientName, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Payment: "+inv.PaymentMethod, "", 1, "R", false, 0, "")
	if inv.Phone != "" {
		pdf.CellFormat(contentW, 5, "Phone: "+inv.Phone, "", 1, "L", false, 0, "")
	}
	if inv.Address != "" {
		pdf.CellFormat(contentW, 5, "Address: "+inv.Address, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	colDesc := contentW * 0.34
	colHSN := contentW * 0.12
	colQty := contentW * 0.09
	colPrice := contentW * 0.15
	colGST := contentW * 0.12
	colAmt := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDesc, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colHSN, 6, "HSN", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colGST, 6, "GST", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range inv.Lines {
		desc := line.Description
		if len(desc) > 38 {
			desc = desc[:37] + "..."
		}
		if !line.Product {
			pdf.CellFormat(colDesc+colHSN+colQty+colPrice+colGST+colAmt, 6, desc, "", 1, "L", false, 0, "")
			continue
		}
		pdf.CellFormat(colDesc, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(colHSN, 6, line.HSN, "", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, line.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colGST, 6, line.GSTPct.StringFixed(0)+"%", "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmt, 6, line.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - colAmt
	pdf.CellFormat(labelW, 6, "Item Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 6, inv.ItemSubtotal.StringFixed(2), "", 1, "R", false, 0, "")

	if inv.FeeLabel != "" {
		pdf.CellFormat(labelW, 6, inv.FeeLabel+":", "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmt, 6, inv.FeeAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 6, inv.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")

	if !inv.DiscountPct.IsZero() {
		pdf.CellFormat(labelW, 6, fmt.Sprintf("Discount (%s%%):", inv.DiscountPct.StringFixed(0)), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmt, 6, "-"+inv.DiscountAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, "TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(colAmt, 8, inv.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Thank you. Wishing you a speedy recovery.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
