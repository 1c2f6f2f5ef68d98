package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a catalog entry shared by all branches
type Item struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Code       string         `gorm:"size:100;unique" json:"code"`
	Category   string         `gorm:"size:100;index" json:"category"`
	Price      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Cost       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	SellByUnit bool           `gorm:"default:false" json:"sell_by_unit"` // quantity is a continuous unit (weight) when true
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Cost  float64 `json:"cost"`
	}{
		Alias: Alias(i),
		Price: float64(i.Price) / 100,
		Cost:  float64(i.Cost) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// BranchItem is the per-branch stock level for a catalog item
type BranchItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_item" json:"branch_id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_item" json:"item_id"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Branch Branch `gorm:"foreignKey:BranchID" json:"-"`
	Item   Item   `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new branch item
func (bi *BranchItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BranchItem model
func (BranchItem) TableName() string {
	return "branch_items"
}
