package service

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionService serves the transaction register: history detail,
// branch and headquarters listings, voiding and the oldest-record probe.
type TransactionService struct {
	transactionRepo     repository.TransactionRepository
	transactionItemRepo repository.TransactionItemRepository
	customerRepo        repository.CustomerRepository
	uow                 repository.UnitOfWork
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	transactionItemRepo repository.TransactionItemRepository,
	customerRepo repository.CustomerRepository,
	uow repository.UnitOfWork,
) *TransactionService {
	return &TransactionService{
		transactionRepo:     transactionRepo,
		transactionItemRepo: transactionItemRepo,
		customerRepo:        customerRepo,
		uow:                 uow,
	}
}

// TransactionListItem is one listing row with its line summaries attached
type TransactionListItem struct {
	repository.TransactionListRow
	TotalAmount float64                             `json:"total_amount"`
	Items       []repository.TransactionLineSummary `json:"items"`
}

// GetTransactionHistory returns the full slip detail: header, branch,
// customer, cashier and line snapshots.
func (s *TransactionService) GetTransactionHistory(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions pages through a branch's register, newest first, with
// slip substring search. Line summaries are attached per row.
func (s *TransactionService) ListTransactions(ctx context.Context, branchID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[TransactionListItem], error) {
	return s.list(ctx, &repository.TransactionFilterParams{
		Pagination: params,
		BranchID:   &branchID,
		Search:     search,
	})
}

// ListTransactionsHQ is the headquarters view across branches; branchID
// narrows to one branch when given.
func (s *TransactionService) ListTransactionsHQ(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[TransactionListItem], error) {
	return s.list(ctx, &repository.TransactionFilterParams{
		Pagination: params,
		BranchID:   branchID,
		Search:     search,
	})
}

func (s *TransactionService) list(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[TransactionListItem], error) {
	rows, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionListItem, 0, len(rows))
	for _, row := range rows {
		lines, err := s.transactionItemRepo.ListLineSummaries(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, TransactionListItem{
			TransactionListRow: row,
			TotalAmount:        float64(row.TotalAmount) / 100,
			Items:              lines,
		})
	}

	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, meta), nil
}

// VoidTransaction reverses a sale: marks the slip and its lines voided,
// restores each line's quantity into branch stock and walks the
// customer's lifetime total back. Loyalty stages already granted stay.
func (s *TransactionService) VoidTransaction(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(repos *repository.TxRepos) error {
		transaction, err := repos.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if transaction == nil {
			return apperror.NewNotFoundError("Transaction")
		}
		if transaction.IsVoided {
			return apperror.NewBadRequestError("Transaction is already voided")
		}

		lines, err := repos.TransactionItems.ListByTransaction(ctx, id)
		if err != nil {
			return err
		}

		for i := range lines {
			line := &lines[i]
			branchItem, err := repos.BranchItems.GetByBranchAndItem(ctx, transaction.BranchID, line.ItemID)
			if err != nil {
				return err
			}
			if branchItem != nil {
				branchItem.Quantity += line.Quantity
				if err := repos.BranchItems.Update(ctx, branchItem); err != nil {
					return err
				}
			}

			line.IsVoided = true
			if err := repos.TransactionItems.Update(ctx, line); err != nil {
				return err
			}
		}

		if transaction.CustomerID != nil {
			customer, err := repos.Customers.GetByID(ctx, *transaction.CustomerID)
			if err != nil {
				return err
			}
			if customer != nil {
				customer.TotalOrderAmount -= transaction.TotalAmount
				if customer.TotalOrderAmount < 0 {
					customer.TotalOrderAmount = 0
				}
				if err := repos.Customers.Update(ctx, customer); err != nil {
					return err
				}
			}
		}

		transaction.IsVoided = true
		return repos.Transactions.Update(ctx, transaction)
	})
}

// GetOldestTransaction returns the earliest slip for a branch, or across
// all branches when branchID is uuid.Nil. Nil when the register is empty.
func (s *TransactionService) GetOldestTransaction(ctx context.Context, branchID uuid.UUID) (*entity.Transaction, error) {
	return s.transactionRepo.Oldest(ctx, branchID)
}
