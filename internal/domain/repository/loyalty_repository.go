package repository

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// LatestStageResult is the most recently completed loyalty stage of a
// customer, joined with its reward reference.
type LatestStageResult struct {
	LoyaltyCustomerID uuid.UUID  `json:"loyalty_customer_id"`
	StageOrder        int        `json:"stage_order"`
	ItemRewardID      *uuid.UUID `json:"item_reward_id,omitempty"`
}

// LoyaltyRepository defines the interface for loyalty program data operations
type LoyaltyRepository interface {
	ListStages(ctx context.Context) ([]entity.LoyaltyStage, error)
	GetStageByOrder(ctx context.Context, order int) (*entity.LoyaltyStage, error)
	ListCustomerStages(ctx context.Context, customerID uuid.UUID) ([]entity.LoyaltyCustomer, error)
	CreateCustomerStage(ctx context.Context, stage *entity.LoyaltyCustomer) error
	UpdateCustomerStage(ctx context.Context, stage *entity.LoyaltyCustomer) error
	// LatestCompletedStage returns the customer's furthest completed stage,
	// or nil when none are done.
	LatestCompletedStage(ctx context.Context, customerID uuid.UUID) (*LatestStageResult, error)
	GetRewardByID(ctx context.Context, id uuid.UUID) (*entity.ItemReward, error)
	CreateStage(ctx context.Context, stage *entity.LoyaltyStage) error
	CreateReward(ctx context.Context, reward *entity.ItemReward) error
}
