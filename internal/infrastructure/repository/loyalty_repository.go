package repository

import (
	"context"
	"errors"

	"github.com/bpims/pos-api/internal/domain/entity"
	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository
func NewLoyaltyRepository(db *gorm.DB) domainRepo.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) ListStages(ctx context.Context) ([]entity.LoyaltyStage, error) {
	var stages []entity.LoyaltyStage
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Order("stage_order ASC").
		Find(&stages).Error
	return stages, err
}

func (r *loyaltyRepository) GetStageByOrder(ctx context.Context, order int) (*entity.LoyaltyStage, error) {
	var stage entity.LoyaltyStage
	err := r.db.WithContext(ctx).
		Preload("Reward").
		First(&stage, "stage_order = ?", order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stage, err
}

func (r *loyaltyRepository) ListCustomerStages(ctx context.Context, customerID uuid.UUID) ([]entity.LoyaltyCustomer, error) {
	var stages []entity.LoyaltyCustomer
	err := r.db.WithContext(ctx).
		Preload("Stage").
		Where("customer_id = ?", customerID).
		Find(&stages).Error
	return stages, err
}

func (r *loyaltyRepository) CreateCustomerStage(ctx context.Context, stage *entity.LoyaltyCustomer) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *loyaltyRepository) UpdateCustomerStage(ctx context.Context, stage *entity.LoyaltyCustomer) error {
	return r.db.WithContext(ctx).Save(stage).Error
}

func (r *loyaltyRepository) LatestCompletedStage(ctx context.Context, customerID uuid.UUID) (*domainRepo.LatestStageResult, error) {
	var results []domainRepo.LatestStageResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT lc.id AS loyalty_customer_id, ls.stage_order, ls.item_reward_id
		FROM loyalty_customers lc
		JOIN loyalty_stages ls ON lc.stage_id = ls.id
		WHERE lc.customer_id = ? AND lc.is_done = TRUE
		ORDER BY ls.stage_order DESC
		LIMIT 1
	`, customerID).Scan(&results).Error
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return &results[0], nil
}

func (r *loyaltyRepository) GetRewardByID(ctx context.Context, id uuid.UUID) (*entity.ItemReward, error) {
	var reward entity.ItemReward
	err := r.db.WithContext(ctx).First(&reward, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reward, err
}

func (r *loyaltyRepository) CreateStage(ctx context.Context, stage *entity.LoyaltyStage) error {
	return r.db.WithContext(ctx).Create(stage).Error
}

func (r *loyaltyRepository) CreateReward(ctx context.Context, reward *entity.ItemReward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}
