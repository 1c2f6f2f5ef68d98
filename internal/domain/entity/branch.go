package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch represents a physical store location with its own inventory
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Code      int            `gorm:"unique;not null" json:"code"` // numeric store code used in slip numbers
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
