package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhysicalRewardCode marks an ItemReward that is handed over as a physical
// item at the counter rather than applied as a credit.
const PhysicalRewardCode = 1

// LoyaltyStage is one step in the rewards ladder, ordered by StageOrder
type LoyaltyStage struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StageOrder   int        `gorm:"unique;not null" json:"stage_order"`
	ItemRewardID *uuid.UUID `gorm:"type:uuid" json:"item_reward_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Reward *ItemReward `gorm:"foreignKey:ItemRewardID" json:"reward,omitempty"`
}

// BeforeCreate generates a UUID before creating a new loyalty stage
func (ls *LoyaltyStage) BeforeCreate(tx *gorm.DB) error {
	if ls.ID == uuid.Nil {
		ls.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyStage model
func (LoyaltyStage) TableName() string {
	return "loyalty_stages"
}

// LoyaltyCustomer records a customer's progress through one stage
type LoyaltyCustomer struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	StageID    uuid.UUID  `gorm:"type:uuid;not null" json:"stage_id"`
	IsDone     bool       `gorm:"default:false" json:"is_done"`
	DateDone   *time.Time `json:"date_done,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relationships
	Customer Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	Stage    LoyaltyStage `gorm:"foreignKey:StageID" json:"stage,omitempty"`
}

// BeforeCreate generates a UUID before creating a new loyalty customer row
func (lc *LoyaltyCustomer) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == uuid.Nil {
		lc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LoyaltyCustomer model
func (LoyaltyCustomer) TableName() string {
	return "loyalty_customers"
}

// ItemReward is a reward attached to a loyalty stage
type ItemReward struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code      int       `gorm:"unique;not null" json:"code"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new item reward
func (ir *ItemReward) BeforeCreate(tx *gorm.DB) error {
	if ir.ID == uuid.Nil {
		ir.ID = uuid.New()
	}
	return nil
}

// IsItem reports whether the reward is a physical item by store convention
func (ir *ItemReward) IsItem() bool {
	return ir.Code == PhysicalRewardCode
}

// TableName returns the table name for the ItemReward model
func (ItemReward) TableName() string {
	return "item_rewards"
}
