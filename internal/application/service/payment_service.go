package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bpims/pos-api/internal/config"
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/bpims/pos-api/pkg/clock"
	"github.com/google/uuid"
)

// PaymentService turns the cashier's cart into a recorded transaction:
// slip number, stock deduction, profit snapshot and the loyalty trigger.
type PaymentService struct {
	cartRepo         repository.CartRepository
	cartItemRepo     repository.CartItemRepository
	userRepo         repository.UserRepository
	branchRepo       repository.BranchRepository
	customerRepo     repository.CustomerRepository
	transactionRepo  repository.TransactionRepository
	loyaltyService   *LoyaltyService
	uow              repository.UnitOfWork
	business         *clock.Business
	loyaltyThreshold int64
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	cartRepo repository.CartRepository,
	cartItemRepo repository.CartItemRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	loyaltyService *LoyaltyService,
	uow repository.UnitOfWork,
	business *clock.Business,
	cfg *config.BusinessConfig,
) *PaymentService {
	return &PaymentService{
		cartRepo:         cartRepo,
		cartItemRepo:     cartItemRepo,
		userRepo:         userRepo,
		branchRepo:       branchRepo,
		customerRepo:     customerRepo,
		transactionRepo:  transactionRepo,
		loyaltyService:   loyaltyService,
		uow:              uow,
		business:         business,
		loyaltyThreshold: toCents(cfg.LoyaltyThreshold),
	}
}

// LoyaltySummary describes the customer's loyalty progress right after a
// qualifying payment.
type LoyaltySummary struct {
	StageOrder      int    `json:"stage_order"`
	RewardName      string `json:"reward_name,omitempty"`
	IsItemReward    bool   `json:"is_item_reward"`
	CompleteLoyalty bool   `json:"complete_loyalty"`
}

// PaymentLine is one recorded item on the checkout response.
type PaymentLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Amount   float64   `json:"amount"`
}

// PaymentResult is the checkout response. It carries everything the
// register needs to render the slip without a follow-up fetch.
type PaymentResult struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	SlipNo          string          `json:"slip_no"`
	TransactionDate time.Time       `json:"transaction_date"`
	BranchName      string          `json:"branch_name"`
	CashierName     string          `json:"cashier_name"`
	CustomerName    string          `json:"customer_name,omitempty"`
	SubTotal        float64         `json:"sub_total"`
	Discount        float64         `json:"discount"`
	DeliveryFee     float64         `json:"delivery_fee"`
	TotalAmount     float64         `json:"total_amount"`
	AmountReceived  float64         `json:"amount_received"`
	Change          float64         `json:"change"`
	Items           []PaymentLine   `json:"items"`
	SkippedItems    []string        `json:"skipped_items,omitempty"`
	Loyalty         *LoyaltySummary `json:"loyalty,omitempty"`
}

// ProcessPayment settles the user's cart. The full mutation (slip
// sequence, transaction insert, per-line stock decrement and snapshot,
// profit update, cart reset, customer lifetime total) commits in one
// database transaction; the loyalty ladder advances after commit so a
// loyalty failure never voids a completed sale.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID uuid.UUID, amountReceived float64) (*PaymentResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	if user.BranchID == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	branch, err := s.branchRepo.GetByID(ctx, *user.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Cart")
	}

	totalAmount := cart.SubTotal
	if cart.Discount != nil {
		totalAmount -= *cart.Discount
	}
	if cart.DeliveryFee != nil {
		totalAmount += *cart.DeliveryFee
	}

	receivedCents := toCents(amountReceived)
	if receivedCents < totalAmount {
		return nil, apperror.ErrInsufficientPayment
	}

	customerID := cart.CustomerID

	result := &PaymentResult{
		BranchName:     branch.Name,
		CashierName:    user.Name,
		SubTotal:       float64(cart.SubTotal) / 100,
		TotalAmount:    float64(totalAmount) / 100,
		AmountReceived: float64(receivedCents) / 100,
		Change:         float64(receivedCents-totalAmount) / 100,
	}

	err = s.uow.Do(ctx, func(repos *repository.TxRepos) error {
		locked, err := repos.Carts.GetByIDForUpdate(ctx, cart.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.NewNotFoundError("Cart")
		}

		cartItems, err := repos.CartItems.ListByCart(ctx, locked.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return apperror.NewBadRequestError("Cart is empty")
		}

		transactionDate := s.business.AdjustTransactionTime(s.business.Now())

		slipNo, err := s.generateSlipNo(ctx, repos, branch, transactionDate)
		if err != nil {
			return err
		}

		transaction := &entity.Transaction{
			SlipNo:          slipNo,
			TotalAmount:     totalAmount,
			AmountReceived:  receivedCents,
			TransactionDate: transactionDate,
			CashierID:       user.ID,
			BranchID:        branch.ID,
			CustomerID:      customerID,
			IsPaid:          true,
		}
		if locked.Discount != nil {
			transaction.Discount = *locked.Discount
		}
		if locked.DeliveryFee != nil {
			transaction.DeliveryFee = *locked.DeliveryFee
		}
		if err := repos.Transactions.Create(ctx, transaction); err != nil {
			return err
		}
		result.TransactionDate = transactionDate
		result.Discount = float64(transaction.Discount) / 100
		result.DeliveryFee = float64(transaction.DeliveryFee) / 100

		var totalCOGS int64
		for _, ci := range cartItems {
			branchItem, err := repos.BranchItems.GetByID(ctx, ci.BranchItemID)
			if err != nil {
				return err
			}
			if branchItem == nil {
				result.SkippedItems = append(result.SkippedItems, ci.BranchItemID.String())
				continue
			}

			item, err := repos.Items.GetByID(ctx, branchItem.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				result.SkippedItems = append(result.SkippedItems, branchItem.ItemID.String())
				continue
			}

			branchItem.Quantity -= ci.Quantity
			if branchItem.Quantity < 0 {
				branchItem.Quantity = 0
			}
			if err := repos.BranchItems.Update(ctx, branchItem); err != nil {
				return err
			}

			amount := lineAmount(item.Price, ci.Quantity)
			if err := repos.TransactionItems.Create(ctx, &entity.TransactionItem{
				TransactionID: transaction.ID,
				ItemID:        item.ID,
				Quantity:      ci.Quantity,
				Amount:        amount,
			}); err != nil {
				return err
			}
			result.Items = append(result.Items, PaymentLine{
				ItemID:   item.ID,
				ItemName: item.Name,
				Quantity: ci.Quantity,
				Price:    float64(item.Price) / 100,
				Amount:   float64(amount) / 100,
			})

			totalCOGS += lineAmount(item.Cost, ci.Quantity)
		}

		// Profit nets the whole sale, so the cart's discount eats into it
		// and the delivery fee adds to it.
		transaction.Profit = totalAmount - totalCOGS
		if err := repos.Transactions.Update(ctx, transaction); err != nil {
			return err
		}

		if err := repos.CartItems.DeleteByCart(ctx, locked.ID); err != nil {
			return err
		}
		locked.SubTotal = 0
		locked.Discount = nil
		locked.DeliveryFee = nil
		locked.CustomerID = nil
		if err := repos.Carts.Update(ctx, locked); err != nil {
			return err
		}

		if customerID != nil {
			customer, err := repos.Customers.GetByID(ctx, *customerID)
			if err != nil {
				return err
			}
			if customer != nil {
				result.CustomerName = customer.Name
				customer.TotalOrderAmount += totalAmount
				if err := repos.Customers.Update(ctx, customer); err != nil {
					return err
				}
			}
		}

		result.TransactionID = transaction.ID
		result.SlipNo = slipNo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if customerID != nil && totalAmount >= s.loyaltyThreshold {
		loyalty, err := s.advanceLoyalty(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		result.Loyalty = loyalty
	}

	return result, nil
}

// advanceLoyalty moves the qualifying customer one rung up the ladder,
// enrolling first-timers, and reports the resulting stage.
func (s *PaymentService) advanceLoyalty(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error) {
	enrolled, err := s.loyaltyService.IsEnrolled(ctx, customerID)
	if err != nil {
		return nil, err
	}

	complete := false
	if enrolled {
		complete, err = s.loyaltyService.MarkNextStageDone(ctx, customerID)
	} else {
		err = s.loyaltyService.EnrollCustomer(ctx, customerID)
	}
	if err != nil {
		return nil, err
	}

	if !enrolled {
		customer, err := s.customerRepo.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if customer != nil && !customer.IsLoyalty {
			customer.IsLoyalty = true
			if err := s.customerRepo.Update(ctx, customer); err != nil {
				return nil, err
			}
		}
	}

	latest, reward, err := s.loyaltyService.LatestCompletedStage(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	summary := &LoyaltySummary{
		StageOrder:      latest.StageOrder,
		CompleteLoyalty: complete,
	}
	if reward != nil {
		summary.RewardName = reward.Name
		summary.IsItemReward = reward.IsItem()
	}
	return summary, nil
}

// generateSlipNo builds the branch's next slip number for the business
// day containing t: branch code, MMDDYY date and a 1-based daily
// sequence. Runs inside the payment transaction; the unique index on
// slip_no catches the residual race between two registers of one branch.
func (s *PaymentService) generateSlipNo(ctx context.Context, repos *repository.TxRepos, branch *entity.Branch, t time.Time) (string, error) {
	from, to := s.business.DayBounds(t)
	count, err := repos.Transactions.CountByBranchBetween(ctx, branch.ID, from, to)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CC%02d-%s-%03d", branch.Code, t.Format("010206"), count+1), nil
}
