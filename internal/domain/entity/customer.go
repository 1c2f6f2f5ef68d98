package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a (possibly loyalty-enrolled) retail customer
type Customer struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Phone            *string        `gorm:"size:50" json:"phone,omitempty"`
	BranchID         *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	TotalOrderAmount int64          `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	IsLoyalty        bool           `gorm:"default:false" json:"is_loyalty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch *Branch `gorm:"foreignKey:BranchID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalOrderAmount float64 `json:"total_order_amount"`
	}{
		Alias:            Alias(c),
		TotalOrderAmount: float64(c.TotalOrderAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
