package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient record. PatientID is the caller-assigned
// natural key used on every lookup; the uuid PK stays internal.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Phone     string
	Address   string
	Date      string
	// Treatment is a legacy free-text field kept for old records.
	Treatment *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
