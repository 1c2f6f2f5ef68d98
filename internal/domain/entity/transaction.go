package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is the financial record of a completed sale. Immutable once
// created except for is_voided, is_paid and profit.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SlipNo          string     `gorm:"size:100;uniqueIndex;not null" json:"slip_no"`
	TotalAmount     int64      `gorm:"not null" json:"-"`           // Stored in cents, excluded from JSON
	AmountReceived  int64      `gorm:"not null" json:"-"`           // Stored in cents, excluded from JSON
	Discount        int64      `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	DeliveryFee     int64      `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Profit          int64      `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	TransactionDate time.Time  `gorm:"not null;index" json:"transaction_date"`
	CashierID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"cashier_id"`
	BranchID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"branch_id"`
	CustomerID      *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	IsPaid          bool       `gorm:"default:true" json:"is_paid"`
	IsVoided        bool       `gorm:"default:false" json:"is_voided"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Cashier  User              `gorm:"foreignKey:CashierID" json:"-"`
	Branch   Branch            `gorm:"foreignKey:BranchID" json:"-"`
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount    float64 `json:"total_amount"`
		AmountReceived float64 `json:"amount_received"`
		Discount       float64 `json:"discount"`
		DeliveryFee    float64 `json:"delivery_fee"`
		Profit         float64 `json:"profit"`
	}{
		Alias:          Alias(t),
		TotalAmount:    float64(t.TotalAmount) / 100,
		AmountReceived: float64(t.AmountReceived) / 100,
		Discount:       float64(t.Discount) / 100,
		DeliveryFee:    float64(t.DeliveryFee) / 100,
		Profit:         float64(t.Profit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem is an immutable snapshot of an item sold: catalog price
// changes after the sale do not touch it.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	Amount        int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	IsVoided      bool      `gorm:"default:false" json:"is_voided"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Item        Item        `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ti TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(ti),
		Amount: float64(ti.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}
