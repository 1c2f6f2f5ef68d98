package repository

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// CartRepository defines the interface for cart data operations
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	// GetByIDForUpdate locks the cart row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
}

// CartItemRepository defines the interface for cart line operations
type CartItemRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)
	GetByCartAndBranchItem(ctx context.Context, cartID, branchItemID uuid.UUID) (*entity.CartItem, error)
	ListByCart(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCart(ctx context.Context, cartID uuid.UUID) error
	// TotalItemCount counts cart lines the way the register displays them:
	// weight-sold lines contribute their quantity, piece-sold lines count 1.
	TotalItemCount(ctx context.Context, cartID uuid.UUID) (float64, error)
}
