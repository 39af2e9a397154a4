package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is a sellable product with a tracked on-hand quantity.
// StockID and ProductName are each unique within a store.
//
// Quantity is allowed to go negative at this layer; sufficiency is enforced
// only by the billing engine's conditional decrement.
type StockItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockID     string    `gorm:"uniqueIndex;not null"`
	ProductName string    `gorm:"uniqueIndex;not null"`
	Quantity    int       `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	HSNCode     string
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2)"`
	GSTPct      decimal.Decimal `gorm:"type:decimal(5,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
