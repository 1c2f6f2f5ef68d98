package service

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/bpims/pos-api/pkg/clock"
	"github.com/google/uuid"
)

// LoyaltyService advances customers through the rewards ladder. Payment
// processing consumes its two entry points: MarkNextStageDone for enrolled
// customers and EnrollCustomer for first-time qualifiers.
type LoyaltyService struct {
	loyaltyRepo  repository.LoyaltyRepository
	customerRepo repository.CustomerRepository
	business     *clock.Business
}

// NewLoyaltyService creates a new loyalty service
func NewLoyaltyService(loyaltyRepo repository.LoyaltyRepository, customerRepo repository.CustomerRepository, business *clock.Business) *LoyaltyService {
	return &LoyaltyService{
		loyaltyRepo:  loyaltyRepo,
		customerRepo: customerRepo,
		business:     business,
	}
}

// MarkNextStageDone completes the customer's next loyalty stage and
// reports whether the final stage has now been reached.
func (s *LoyaltyService) MarkNextStageDone(ctx context.Context, customerID uuid.UUID) (bool, error) {
	stages, err := s.loyaltyRepo.ListStages(ctx)
	if err != nil {
		return false, err
	}
	if len(stages) == 0 {
		return false, apperror.NewNotFoundError("Loyalty stages")
	}

	latest, err := s.loyaltyRepo.LatestCompletedStage(ctx, customerID)
	if err != nil {
		return false, err
	}

	currentOrder := 0
	if latest != nil {
		currentOrder = latest.StageOrder
	}

	lastOrder := stages[len(stages)-1].StageOrder
	if currentOrder >= lastOrder {
		// Ladder already finished; nothing left to advance.
		return true, nil
	}

	next, err := s.loyaltyRepo.GetStageByOrder(ctx, currentOrder+1)
	if err != nil {
		return false, err
	}
	if next == nil {
		return false, apperror.NewNotFoundError("Loyalty stage")
	}

	now := s.business.Now()
	if err := s.loyaltyRepo.CreateCustomerStage(ctx, &entity.LoyaltyCustomer{
		CustomerID: customerID,
		StageID:    next.ID,
		IsDone:     true,
		DateDone:   &now,
	}); err != nil {
		return false, err
	}

	return next.StageOrder == lastOrder, nil
}

// EnrollCustomer enrolls a customer into the loyalty program, completing
// the first stage on the qualifying purchase.
func (s *LoyaltyService) EnrollCustomer(ctx context.Context, customerID uuid.UUID) error {
	first, err := s.loyaltyRepo.GetStageByOrder(ctx, 1)
	if err != nil {
		return err
	}
	if first == nil {
		return apperror.NewNotFoundError("Loyalty stages")
	}

	now := s.business.Now()
	return s.loyaltyRepo.CreateCustomerStage(ctx, &entity.LoyaltyCustomer{
		CustomerID: customerID,
		StageID:    first.ID,
		IsDone:     true,
		DateDone:   &now,
	})
}

// LatestCompletedStage surfaces the customer's furthest completed stage
// with its reward, or nil when none are done.
func (s *LoyaltyService) LatestCompletedStage(ctx context.Context, customerID uuid.UUID) (*repository.LatestStageResult, *entity.ItemReward, error) {
	latest, err := s.loyaltyRepo.LatestCompletedStage(ctx, customerID)
	if err != nil || latest == nil {
		return nil, nil, err
	}

	var reward *entity.ItemReward
	if latest.ItemRewardID != nil {
		reward, err = s.loyaltyRepo.GetRewardByID(ctx, *latest.ItemRewardID)
		if err != nil {
			return nil, nil, err
		}
	}

	return latest, reward, nil
}

// IsEnrolled reports whether the customer has any loyalty progress rows.
func (s *LoyaltyService) IsEnrolled(ctx context.Context, customerID uuid.UUID) (bool, error) {
	stages, err := s.loyaltyRepo.ListCustomerStages(ctx, customerID)
	if err != nil {
		return false, err
	}
	return len(stages) > 0, nil
}
