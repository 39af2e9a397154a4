package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognised by the role guard and the store router.
const (
	RoleAdmin        = "admin"
	RoleStaff        = "staff"
	RoleVisitor      = "visitor"
	RoleVisitorStaff = "visitor-staff"
)

// User stores clinic accounts with role-based access.
// Users live in the production store only; the demo store holds no accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"` // stored lowercase
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
