package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is the per-user shopping cart. One cart per user, created lazily
// on first access; the unique index on user_id keeps concurrent first
// accesses from creating two.
type Cart struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	SubTotal    int64      `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount    *int64     `json:"-"`                           // Stored in cents, excluded from JSON
	DeliveryFee *int64     `json:"-"`                           // Stored in cents, excluded from JSON
	CustomerID  *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Cart) MarshalJSON() ([]byte, error) {
	type Alias Cart
	out := &struct {
		Alias
		SubTotal    float64  `json:"sub_total"`
		Discount    *float64 `json:"discount,omitempty"`
		DeliveryFee *float64 `json:"delivery_fee,omitempty"`
	}{
		Alias:    Alias(c),
		SubTotal: float64(c.SubTotal) / 100,
	}
	if c.Discount != nil {
		d := float64(*c.Discount) / 100
		out.Discount = &d
	}
	if c.DeliveryFee != nil {
		f := float64(*c.DeliveryFee) / 100
		out.DeliveryFee = &f
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new cart
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a line in a cart, referencing branch-scoped stock.
// Quantity is fractional for weight-sold goods.
type CartItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CartID       uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	BranchItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_item_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Cart       Cart       `gorm:"foreignKey:CartID" json:"-"`
	BranchItem BranchItem `gorm:"foreignKey:BranchItemID" json:"branch_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new cart item
func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}
