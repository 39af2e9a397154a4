package dto

import "github.com/shopspring/decimal"

type CreateStockRequest struct {
	StockID     string          `json:"stockId"     validate:"required"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int             `json:"quantity"    validate:"min=0"`
	Price       decimal.Decimal `json:"price"       validate:"min=0"`
	HSNCode     string          `json:"hsnCode"`
	Discount    decimal.Decimal `json:"discount"    validate:"min=0,max=100"`
	GST         decimal.Decimal `json:"gst"         validate:"min=0"`
}

// UpdateStockRequest is a partial update. UpdateMode controls how Quantity is
// applied: "add" treats it as a delta, "set" replaces the stored value.
type UpdateStockRequest struct {
	UpdateMode  string           `json:"updateMode"  validate:"omitempty,oneof=add set"`
	ProductName *string          `json:"productName"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	HSNCode     *string          `json:"hsnCode"`
	Discount    *decimal.Decimal `json:"discount"`
	GST         *decimal.Decimal `json:"gst"`
}

type StockResponse struct {
	StockID     string          `json:"stockId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	HSNCode     string          `json:"hsnCode"`
	Discount    decimal.Decimal `json:"discount"`
	GST         decimal.Decimal `json:"gst"`
}
