package service

import (
	"context"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/internal/infrastructure/cache"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

const catalogCacheTTL = 5 * time.Minute

// CartService handles the per-user shopping cart
type CartService struct {
	cartRepo       repository.CartRepository
	cartItemRepo   repository.CartItemRepository
	itemRepo       repository.ItemRepository
	branchItemRepo repository.BranchItemRepository
	userRepo       repository.UserRepository
	branchRepo     repository.BranchRepository
	customerRepo   repository.CustomerRepository
	uow            repository.UnitOfWork
	catalog        cache.CatalogCache
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repository.CartRepository,
	cartItemRepo repository.CartItemRepository,
	itemRepo repository.ItemRepository,
	branchItemRepo repository.BranchItemRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	uow repository.UnitOfWork,
	catalog cache.CatalogCache,
) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		cartItemRepo:   cartItemRepo,
		itemRepo:       itemRepo,
		branchItemRepo: branchItemRepo,
		userRepo:       userRepo,
		branchRepo:     branchRepo,
		customerRepo:   customerRepo,
		uow:            uow,
		catalog:        catalog,
	}
}

// CartSummary is the cart header returned to the register
type CartSummary struct {
	ID           uuid.UUID `json:"id"`
	SubTotal     float64   `json:"sub_total"`
	Discount     *float64  `json:"discount,omitempty"`
	DeliveryFee  *float64  `json:"delivery_fee,omitempty"`
	CustomerName *string   `json:"customer_name,omitempty"`
}

// CartLine is one enriched cart line
type CartLine struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	SellByUnit bool      `json:"sell_by_unit"`
	BranchQty  float64   `json:"branch_qty"`
	BranchName string    `json:"branch_name"`
}

// CartDetail combines the cart header with its enriched lines
type CartDetail struct {
	Cart  CartSummary `json:"cart"`
	Items []CartLine  `json:"cart_items"`
}

// GetCartForUser returns the user's cart, creating an empty one on first
// access.
func (s *CartService) GetCartForUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &entity.Cart{UserID: userID, SubTotal: 0}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCartAndItems returns the cart header, its enriched lines and the
// register's total item count.
func (s *CartService) GetCartAndItems(ctx context.Context, userID uuid.UUID) (*CartDetail, float64, error) {
	cart, err := s.GetCartForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	summary := CartSummary{
		ID:       cart.ID,
		SubTotal: float64(cart.SubTotal) / 100,
	}
	if cart.Discount != nil {
		d := float64(*cart.Discount) / 100
		summary.Discount = &d
	}
	if cart.DeliveryFee != nil {
		f := float64(*cart.DeliveryFee) / 100
		summary.DeliveryFee = &f
	}
	if cart.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *cart.CustomerID)
		if err != nil {
			return nil, 0, err
		}
		if customer != nil {
			summary.CustomerName = &customer.Name
		}
	}

	lines, err := s.cartLines(ctx, cart.ID)
	if err != nil {
		return nil, 0, err
	}

	totalCount, err := s.cartItemRepo.TotalItemCount(ctx, cart.ID)
	if err != nil {
		return nil, 0, err
	}

	return &CartDetail{Cart: summary, Items: lines}, totalCount, nil
}

// cartLines loads the cart's lines and enriches them with catalog and
// branch stock data. Lines whose stock or catalog rows have vanished are
// left out, matching the register's view of sellable lines.
func (s *CartService) cartLines(ctx context.Context, cartID uuid.UUID) ([]CartLine, error) {
	cartItems, err := s.cartItemRepo.ListByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(cartItems))
	for _, ci := range cartItems {
		branchItem, err := s.branchItemRepo.GetByID(ctx, ci.BranchItemID)
		if err != nil {
			return nil, err
		}
		if branchItem == nil {
			continue
		}

		item, err := s.lookupItem(ctx, branchItem.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}

		branch, err := s.branchRepo.GetByID(ctx, branchItem.BranchID)
		if err != nil {
			return nil, err
		}

		line := CartLine{
			ID:         ci.ID,
			ItemID:     item.ID,
			Name:       item.Name,
			Price:      float64(item.Price) / 100,
			Quantity:   ci.Quantity,
			SellByUnit: item.SellByUnit,
			BranchQty:  branchItem.Quantity,
		}
		if branch != nil {
			line.BranchName = branch.Name
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// lookupItem reads an item through the catalog cache.
func (s *CartService) lookupItem(ctx context.Context, itemID uuid.UUID) (*entity.Item, error) {
	if cached, ok, err := s.catalog.GetItem(ctx, itemID); err == nil && ok {
		return cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil || item == nil {
		return item, err
	}

	_ = s.catalog.SetItem(ctx, item, catalogCacheTTL)
	return item, nil
}

// AddItemToCart validates stock and atomically upserts a cart line while
// bumping the subtotal. The cart row is locked for the duration so
// concurrent adds from the same register serialize.
func (s *CartService) AddItemToCart(ctx context.Context, cartID, itemID uuid.UUID, quantity float64) error {
	if quantity <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	item, err := s.lookupItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	return s.uow.Do(ctx, func(repos *repository.TxRepos) error {
		cart, err := repos.Carts.GetByIDForUpdate(ctx, cartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apperror.NewNotFoundError("Cart")
		}

		user, err := s.userRepo.GetByID(ctx, cart.UserID)
		if err != nil {
			return err
		}
		if user == nil || user.BranchID == nil {
			return apperror.NewNotFoundError("Branch")
		}

		branchItem, err := repos.BranchItems.GetByBranchAndItem(ctx, *user.BranchID, itemID)
		if err != nil {
			return err
		}
		if branchItem == nil || branchItem.Quantity < quantity {
			return apperror.ErrInsufficientStock
		}

		existing, err := repos.CartItems.GetByCartAndBranchItem(ctx, cart.ID, branchItem.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.Quantity += quantity
			if err := repos.CartItems.Update(ctx, existing); err != nil {
				return err
			}
		} else {
			if err := repos.CartItems.Create(ctx, &entity.CartItem{
				CartID:       cart.ID,
				BranchItemID: branchItem.ID,
				Quantity:     quantity,
			}); err != nil {
				return err
			}
		}

		cart.SubTotal += lineAmount(item.Price, quantity)
		return repos.Carts.Update(ctx, cart)
	})
}

// UpdateItemQuantity sets a cart line to a new quantity and adjusts the
// subtotal by the delta.
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartItemID uuid.UUID, quantity float64) error {
	if quantity <= 0 {
		return apperror.NewBadRequestError("Quantity must be positive")
	}

	cartItem, err := s.cartItemRepo.GetByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if cartItem == nil {
		return apperror.NewNotFoundError("Cart item")
	}

	cart, err := s.cartRepo.GetByID(ctx, cartItem.CartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	branchItem, err := s.branchItemRepo.GetByID(ctx, cartItem.BranchItemID)
	if err != nil {
		return err
	}
	if branchItem == nil {
		return apperror.NewNotFoundError("Item")
	}

	item, err := s.lookupItem(ctx, branchItem.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	cart.SubTotal += lineAmount(item.Price, quantity) - lineAmount(item.Price, cartItem.Quantity)
	cartItem.Quantity = quantity

	if err := s.cartItemRepo.Update(ctx, cartItem); err != nil {
		return err
	}
	return s.cartRepo.Update(ctx, cart)
}

// RemoveCartItem deletes a cart line and walks the subtotal back. A
// negative subtotal never happens under correct deltas but is clamped to
// zero anyway, clearing discount and delivery fee with it.
func (s *CartService) RemoveCartItem(ctx context.Context, cartItemID uuid.UUID) error {
	cartItem, err := s.cartItemRepo.GetByID(ctx, cartItemID)
	if err != nil {
		return err
	}
	if cartItem == nil {
		return apperror.NewNotFoundError("Cart item")
	}

	cart, err := s.cartRepo.GetByID(ctx, cartItem.CartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	branchItem, err := s.branchItemRepo.GetByID(ctx, cartItem.BranchItemID)
	if err != nil {
		return err
	}
	if branchItem == nil {
		return apperror.NewNotFoundError("Item")
	}

	item, err := s.lookupItem(ctx, branchItem.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	cart.SubTotal -= lineAmount(item.Price, cartItem.Quantity)
	if cart.SubTotal < 0 {
		cart.SubTotal = 0
		cart.Discount = nil
		cart.DeliveryFee = nil
	}

	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return err
	}
	return s.cartItemRepo.Delete(ctx, cartItemID)
}

// ClearCart removes every line and resets the cart header.
func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	if err := s.cartItemRepo.DeleteByCart(ctx, cartID); err != nil {
		return err
	}

	cart.SubTotal = 0
	cart.Discount = nil
	cart.DeliveryFee = nil
	cart.CustomerID = nil
	return s.cartRepo.Update(ctx, cart)
}

// UpdateDeliveryFee sets the cart's delivery fee.
func (s *CartService) UpdateDeliveryFee(ctx context.Context, cartID uuid.UUID, deliveryFee float64) error {
	if deliveryFee < 0 {
		return apperror.NewBadRequestError("Delivery fee cannot be negative")
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	fee := toCents(deliveryFee)
	cart.DeliveryFee = &fee
	return s.cartRepo.Update(ctx, cart)
}

// UpdateDiscount sets the cart's discount; a discount larger than the
// subtotal is rejected.
func (s *CartService) UpdateDiscount(ctx context.Context, cartID uuid.UUID, discount float64) error {
	if discount < 0 {
		return apperror.NewBadRequestError("Discount cannot be negative")
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	d := toCents(discount)
	if d > cart.SubTotal {
		return apperror.ErrDiscountTooLarge
	}

	cart.Discount = &d
	return s.cartRepo.Update(ctx, cart)
}

// UpdateCustomer attaches (or detaches, with nil) a customer to the cart.
func (s *CartService) UpdateCustomer(ctx context.Context, cartID uuid.UUID, customerID *uuid.UUID) error {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperror.NewNotFoundError("Cart")
	}

	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
	}

	cart.CustomerID = customerID
	return s.cartRepo.Update(ctx, cart)
}
