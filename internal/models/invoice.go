package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type Invoice struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID string         `gorm:"type:uuid;not null;index"`
	Amount     int64          `gorm:"not null"` // cents
	Status     string         `gorm:"size:255;not null;index"`
	Date       datatypes.Date `gorm:"not null"`
}

// InvoiceChanges is the set of columns an update may touch.
type InvoiceChanges struct {
	CustomerID string
	Amount     int64
	Status     string
}

// InvoiceRow is an invoice joined with its customer for listing views.
type InvoiceRow struct {
	ID         uuid.UUID
	CustomerID string
	Name       string
	Email      string
	ImageURL   string
	Amount     int64
	Date       datatypes.Date
	Status     string
}
