package repository

import (
	"context"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionFilterParams contains filtering parameters for transaction listings
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	// BranchID narrows the listing to one branch; nil lists all branches
	// (headquarters view).
	BranchID *uuid.UUID
	// Search matches slip numbers by substring.
	Search string
}

// TransactionListRow is one row of the transaction register listing,
// joined with the cashier (and branch for the headquarters view).
type TransactionListRow struct {
	ID              uuid.UUID `json:"id"`
	TotalAmount     int64     `json:"-"`
	SlipNo          string    `json:"slip_no"`
	TransactionDate time.Time `json:"transaction_date"`
	CashierName     string    `json:"cashier_name"`
	BranchName      string    `json:"branch_name,omitempty"`
	IsVoided        bool      `json:"is_voided"`
}

// TransactionLineSummary is the compact line detail attached to listing rows
type TransactionLineSummary struct {
	ID       uuid.UUID `json:"id"`
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Quantity float64   `json:"quantity"`
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	// CountByBranchBetween counts a branch's transactions recorded within
	// [from, to]; feeds the daily slip sequence.
	CountByBranchBetween(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]TransactionListRow, int64, error)
	// Oldest returns the branch's earliest transaction; uuid.Nil means any
	// branch. Nil result when no transactions exist.
	Oldest(ctx context.Context, branchID uuid.UUID) (*entity.Transaction, error)
}

// TransactionItemRepository defines the interface for sale line snapshots
type TransactionItemRepository interface {
	Create(ctx context.Context, item *entity.TransactionItem) error
	Update(ctx context.Context, item *entity.TransactionItem) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionItem, error)
	ListLineSummaries(ctx context.Context, transactionID uuid.UUID) ([]TransactionLineSummary, error)
}
