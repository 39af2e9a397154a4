package dto

import "github.com/shopspring/decimal"

type BillItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	HSN         string          `json:"HSN"`
	Quantity    int             `json:"quantity"    validate:"min=0"`
	GST         decimal.Decimal `json:"GST"         validate:"min=0"`
}

type GenerateBillRequest struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	Date          string            `json:"date"`
	Type          string            `json:"type"          validate:"omitempty,oneof=Consulting Treatment Product"`
	TypeOfPayment string            `json:"typeOfPayment"`
	Discount      decimal.Decimal   `json:"discount"      validate:"min=0,max=100"`
	ConsultingFee decimal.Decimal   `json:"consultingFee" validate:"min=0"`
	TreatmentFee  decimal.Decimal   `json:"treatmentFee"  validate:"min=0"`
	Items         []BillItemRequest `json:"items"         validate:"dive"`
}

// UpdateBillRequest replaces items and discount only. Type and fees are
// immutable after creation.
type UpdateBillRequest struct {
	Items    []BillItemRequest `json:"items"    validate:"dive"`
	Discount decimal.Decimal   `json:"discount" validate:"min=0,max=100"`
}

type BillItemResponse struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	HSN         string          `json:"HSN"`
	Quantity    int             `json:"quantity"`
	GST         decimal.Decimal `json:"GST"`
	BaseTotal   decimal.Decimal `json:"baseTotal"`
	GSTAmount   decimal.Decimal `json:"gstAmount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

type BillResponse struct {
	BillID        string             `json:"billId"`
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	Date          string             `json:"date"`
	Type          string             `json:"type"`
	TypeOfPayment string             `json:"typeOfPayment"`
	Discount      decimal.Decimal    `json:"discount"`
	ConsultingFee decimal.Decimal    `json:"consultingFee"`
	TreatmentFee  decimal.Decimal    `json:"treatmentFee"`
	Items         []BillItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountAmt   decimal.Decimal    `json:"discountAmount"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     string             `json:"createdAt"`
}
