package repository

import (
	"context"
	"errors"

	"github.com/bpims/pos-api/internal/domain/entity"
	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

func (r *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

type cartItemRepository struct {
	db *gorm.DB
}

// NewCartItemRepository creates a new cart item repository
func NewCartItemRepository(db *gorm.DB) domainRepo.CartItemRepository {
	return &cartItemRepository{db: db}
}

func (r *cartItemRepository) Create(ctx context.Context, item *entity.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartItemRepository) GetByCartAndBranchItem(ctx context.Context, cartID, branchItemID uuid.UUID) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "cart_id = ? AND branch_item_id = ?", cartID, branchItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *cartItemRepository) ListByCart(ctx context.Context, cartID uuid.UUID) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartItemRepository) Update(ctx context.Context, item *entity.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CartItem{}, "id = ?", id).Error
}

func (r *cartItemRepository) DeleteByCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CartItem{}, "cart_id = ?", cartID).Error
}

// TotalItemCount sums cart lines for the register display: weight-sold
// lines contribute their quantity, piece-sold lines count once each.
func (r *cartItemRepository) TotalItemCount(ctx context.Context, cartID uuid.UUID) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT SUM(CASE
		            WHEN i.sell_by_unit THEN ci.quantity
		            ELSE 1
		           END)
		FROM cart_items ci
		INNER JOIN branch_items bi ON ci.branch_item_id = bi.id
		INNER JOIN items i ON i.id = bi.item_id
		WHERE ci.cart_id = ?
	`, cartID).Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
