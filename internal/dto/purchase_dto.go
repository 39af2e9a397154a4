package dto

import "github.com/shopspring/decimal"

type PurchaseItemRequest struct {
	ProductName string          `json:"productName" validate:"required"`
	HSNCode     string          `json:"hsnCode"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	Rate        decimal.Decimal `json:"rate"        validate:"min=0"`
	Discount    decimal.Decimal `json:"discount"    validate:"min=0,max=100"`
	GST         decimal.Decimal `json:"gst"         validate:"min=0"`
	// NewPrice, when non-zero, overrides the matched stock item's sale price.
	NewPrice decimal.Decimal `json:"newPrice" validate:"min=0"`
}

type RecordPurchaseRequest struct {
	VendorName  string                `json:"vendorName"  validate:"required"`
	InvoiceNo   string                `json:"invoiceNo"   validate:"required"`
	InvoiceDate string                `json:"invoiceDate"`
	GSTIN       string                `json:"gstin"`
	Items       []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseItemResponse struct {
	ProductName string          `json:"productName"`
	HSNCode     string          `json:"hsnCode"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	GST         decimal.Decimal `json:"gst"`
	Taxable     decimal.Decimal `json:"taxableAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
}

type PurchaseTotals struct {
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	RoundOff      decimal.Decimal `json:"roundOff"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

type PurchaseResponse struct {
	ID          string                 `json:"id"`
	VendorName  string                 `json:"vendorName"`
	InvoiceNo   string                 `json:"invoiceNo"`
	InvoiceDate string                 `json:"invoiceDate"`
	GSTIN       string                 `json:"gstin"`
	Items       []PurchaseItemResponse `json:"items"`
	Totals      PurchaseTotals         `json:"totals"`
	CreatedAt   string                 `json:"createdAt"`
}
