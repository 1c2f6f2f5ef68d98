package service

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/internal/infrastructure/cache"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ItemService manages the catalog and per-branch stock
type ItemService struct {
	itemRepo       repository.ItemRepository
	branchItemRepo repository.BranchItemRepository
	catalog        cache.CatalogCache
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, branchItemRepo repository.BranchItemRepository, catalog cache.CatalogCache) *ItemService {
	return &ItemService{
		itemRepo:       itemRepo,
		branchItemRepo: branchItemRepo,
		catalog:        catalog,
	}
}

// GetItem reads a catalog item, serving cache hits when Redis is wired.
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	if cached, ok, err := s.catalog.GetItem(ctx, id); err == nil && ok {
		return cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	_ = s.catalog.SetItem(ctx, item, catalogCacheTTL)
	return item, nil
}

// CreateItem adds a catalog item; item codes are unique.
func (s *ItemService) CreateItem(ctx context.Context, item *entity.Item) error {
	existing, err := s.itemRepo.GetByCode(ctx, item.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewBadRequestError("Item code already exists")
	}
	return s.itemRepo.Create(ctx, item)
}

// UpdateItem updates a catalog item and drops its cache entry.
func (s *ItemService) UpdateItem(ctx context.Context, item *entity.Item) error {
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}
	return s.catalog.InvalidateItem(ctx, item.ID)
}

// ListBranchItems pages through a branch's stock with search and
// category filtering.
func (s *ItemService) ListBranchItems(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams, search, category string) (*pagination.PaginatedResult[entity.BranchItem], error) {
	items, total, err := s.branchItemRepo.ListByBranch(ctx, branchID, &repository.BranchItemFilterParams{
		Pagination: params,
		Search:     search,
		Category:   category,
	})
	if err != nil {
		return nil, err
	}

	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(items, meta), nil
}

// ListLowStock lists a branch's stock rows at or below the threshold.
func (s *ItemService) ListLowStock(ctx context.Context, branchID uuid.UUID, threshold float64) ([]entity.BranchItem, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.branchItemRepo.ListLowStock(ctx, branchID, threshold)
}

// AdjustStock adds delta to a branch's stock row, creating the row on
// first receipt. The result cannot go negative.
func (s *ItemService) AdjustStock(ctx context.Context, branchID, itemID uuid.UUID, delta float64) (*entity.BranchItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	branchItem, err := s.branchItemRepo.GetByBranchAndItem(ctx, branchID, itemID)
	if err != nil {
		return nil, err
	}

	if branchItem == nil {
		if delta < 0 {
			return nil, apperror.ErrInsufficientStock
		}
		branchItem = &entity.BranchItem{
			BranchID: branchID,
			ItemID:   itemID,
			Quantity: delta,
		}
		if err := s.branchItemRepo.Create(ctx, branchItem); err != nil {
			return nil, err
		}
		return branchItem, nil
	}

	if branchItem.Quantity+delta < 0 {
		return nil, apperror.ErrInsufficientStock
	}

	branchItem.Quantity += delta
	if err := s.branchItemRepo.Update(ctx, branchItem); err != nil {
		return nil, err
	}
	return branchItem, nil
}
