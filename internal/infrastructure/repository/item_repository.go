package repository

import (
	"context"
	"errors"

	"github.com/bpims/pos-api/internal/domain/entity"
	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new catalog item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

type branchItemRepository struct {
	db *gorm.DB
}

// NewBranchItemRepository creates a new branch stock repository
func NewBranchItemRepository(db *gorm.DB) domainRepo.BranchItemRepository {
	return &branchItemRepository{db: db}
}

func (r *branchItemRepository) Create(ctx context.Context, branchItem *entity.BranchItem) error {
	return r.db.WithContext(ctx).Create(branchItem).Error
}

func (r *branchItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BranchItem, error) {
	var branchItem entity.BranchItem
	err := r.db.WithContext(ctx).
		Preload("Item").Preload("Branch").
		First(&branchItem, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branchItem, err
}

func (r *branchItemRepository) GetByBranchAndItem(ctx context.Context, branchID, itemID uuid.UUID) (*entity.BranchItem, error) {
	var branchItem entity.BranchItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		First(&branchItem, "branch_id = ? AND item_id = ?", branchID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &branchItem, err
}

func (r *branchItemRepository) Update(ctx context.Context, branchItem *entity.BranchItem) error {
	return r.db.WithContext(ctx).Save(branchItem).Error
}

func (r *branchItemRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, params *domainRepo.BranchItemFilterParams) ([]entity.BranchItem, int64, error) {
	var branchItems []entity.BranchItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BranchItem{}).
		Joins("JOIN items ON items.id = branch_items.item_id").
		Where("branch_items.branch_id = ?", branchID)

	if params.Search != "" {
		query = query.Where("items.name ILIKE ? OR items.code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("items.category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Item").
		Order("items.name ASC").
		Find(&branchItems).Error

	return branchItems, total, err
}

func (r *branchItemRepository) ListLowStock(ctx context.Context, branchID uuid.UUID, threshold float64) ([]entity.BranchItem, error) {
	var branchItems []entity.BranchItem
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND quantity <= ?", branchID, threshold).
		Preload("Item").
		Order("quantity ASC").
		Find(&branchItems).Error
	return branchItems, err
}
