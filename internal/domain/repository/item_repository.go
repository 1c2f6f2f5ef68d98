package repository

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// ItemRepository defines the interface for catalog item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
}

// BranchItemFilterParams contains filtering parameters for branch stock queries
type BranchItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
}

// BranchItemRepository defines the interface for per-branch stock operations
type BranchItemRepository interface {
	Create(ctx context.Context, branchItem *entity.BranchItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BranchItem, error)
	GetByBranchAndItem(ctx context.Context, branchID, itemID uuid.UUID) (*entity.BranchItem, error)
	Update(ctx context.Context, branchItem *entity.BranchItem) error
	ListByBranch(ctx context.Context, branchID uuid.UUID, params *BranchItemFilterParams) ([]entity.BranchItem, int64, error)
	ListLowStock(ctx context.Context, branchID uuid.UUID, threshold float64) ([]entity.BranchItem, error)
}
